package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/weiwei/pkg/app"
	"tableflip.dev/weiwei/pkg/version"
)

// Transport selects how the journal is exposed to MCP clients.
type Transport string

const (
	// TransportStdio speaks MCP over stdin/stdout, for clients that launch
	// weiwei as a subprocess.
	TransportStdio Transport = "stdio"
	// TransportHTTP serves the streamable HTTP transport.
	TransportHTTP Transport = "http"
)

const (
	DefaultAddr = "127.0.0.1:8080"
	DefaultPath = "/mcp"
)

const instructions = "Plan balanced meals, log how the stomach feels afterwards and read reports on the food journal."

// Runner serves the weiwei journal to MCP clients.
type Runner struct {
	App *app.Service
	// Name and Version are reported in the initialize handshake. They default
	// to the build identity in pkg/version.
	Name    string
	Version string

	// Transport defaults to stdio.
	Transport Transport
	// Addr, Path and the TLS pair only apply to TransportHTTP.
	Addr        string
	Path        string
	TLSCert     string
	TLSKey      string
	OnListening func(net.Addr)

	// Stdin and Stdout default to the process streams.
	Stdin  io.Reader
	Stdout io.Writer
	// Logger receives transport errors. stdout is reserved for the protocol.
	Logger *log.Logger
}

// withDefaults fills every unset field.
func (r Runner) withDefaults() Runner {
	if r.Name == "" {
		r.Name = version.Name
	}
	if r.Version == "" {
		r.Version = version.Version
	}
	if r.Transport == "" {
		r.Transport = TransportStdio
	}
	if strings.TrimSpace(r.Addr) == "" {
		r.Addr = DefaultAddr
	}
	r.Path = strings.TrimSpace(r.Path)
	if r.Path == "" {
		r.Path = DefaultPath
	}
	if !strings.HasPrefix(r.Path, "/") {
		r.Path = "/" + r.Path
	}
	if r.Stdin == nil {
		r.Stdin = os.Stdin
	}
	if r.Stdout == nil {
		r.Stdout = os.Stdout
	}
	if r.Logger == nil {
		r.Logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	return r
}

// newServer registers the journal tools and resources.
func (r Runner) newServer() *server.MCPServer {
	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", r.Name),
		r.Version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions(instructions),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)
	svc := NewService(r.App)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

// Do serves until ctx is cancelled or, on stdio, the client closes stdin.
func (r Runner) Do(ctx context.Context) error {
	if r.App == nil {
		return errors.New("mcp runner requires an app service")
	}
	r = r.withDefaults()
	srv := r.newServer()

	switch r.Transport {
	case TransportStdio:
		stdio := server.NewStdioServer(srv)
		stdio.SetErrorLogger(r.Logger)
		return stdio.Listen(ctx, r.Stdin, r.Stdout)
	case TransportHTTP:
		return r.serveHTTP(ctx, srv)
	default:
		return fmt.Errorf("unknown MCP transport %q (expected stdio or http)", r.Transport)
	}
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	if (r.TLSCert == "") != (r.TLSKey == "") {
		return errors.New("both tls cert and key must be provided")
	}

	mux := http.NewServeMux()
	mux.Handle(r.Path, server.NewStreamableHTTPServer(srv))
	httpSrv := &http.Server{Handler: mux, ErrorLog: r.Logger}

	ln, err := net.Listen("tcp", r.Addr)
	if err != nil {
		return err
	}
	if r.OnListening != nil {
		r.OnListening(ln.Addr())
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	if r.TLSCert != "" {
		err = httpSrv.ServeTLS(ln, r.TLSCert, r.TLSKey)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
