package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerateSendsSchemaAndKey(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"{\"a\":"},{"text":"1}"}]}}]}`)
	}))
	defer srv.Close()

	c := New(Config{APIKey: "secret", Model: "m1", Endpoint: srv.URL + "/v1beta/"})
	out, err := c.Generate(context.Background(), Request{
		Prompt: "hello",
		Schema: &Schema{Type: TypeObject, Properties: map[string]*Schema{"a": {Type: TypeNumber}}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out != `{"a":1}` {
		t.Fatalf("expected joined parts, got %q", out)
	}
	if gotPath != "/v1beta/models/m1:generateContent" {
		t.Fatalf("unexpected path %s", gotPath)
	}
	if gotKey != "secret" {
		t.Fatalf("expected api key header, got %q", gotKey)
	}
	cfg, ok := gotBody["generationConfig"].(map[string]any)
	if !ok || cfg["responseMimeType"] != "application/json" {
		t.Fatalf("expected json generation config, got %v", gotBody["generationConfig"])
	}
	schema, ok := cfg["responseSchema"].(map[string]any)
	if !ok || schema["type"] != "OBJECT" {
		t.Fatalf("expected object schema, got %v", cfg["responseSchema"])
	}
}

func TestGenerateUsesEndpointVersion(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`)
	}))
	defer srv.Close()

	c := New(Config{APIKey: "k", Model: "m2", Endpoint: srv.URL + "/proxy/v1"})
	if _, err := c.Generate(context.Background(), Request{Prompt: "p"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if gotPath != "/proxy/v1/models/m2:generateContent" {
		t.Fatalf("unexpected path %s", gotPath)
	}
}

func TestSplitEndpoint(t *testing.T) {
	tests := map[string][2]string{
		DefaultEndpoint:               {"https://generativelanguage.googleapis.com/", "v1beta"},
		"http://localhost:8080":       {"http://localhost:8080/", ""},
		"http://localhost:8080/v1/":   {"http://localhost:8080/", "v1"},
		"https://proxy.example/gm/v2": {"https://proxy.example/gm/", "v2"},
		"https://proxy.example/video": {"https://proxy.example/video/", ""},
	}
	for in, want := range tests {
		base, version := splitEndpoint(in)
		if base != want[0] || version != want[1] {
			t.Fatalf("splitEndpoint(%q) = %q, %q; want %q, %q", in, base, version, want[0], want[1])
		}
	}
}

func TestGenerateWithoutSchemaOmitsGenerationConfig(t *testing.T) {
	var raw string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		raw = string(b)
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`)
	}))
	defer srv.Close()

	out, err := New(Config{APIKey: "k", Endpoint: srv.URL}).Generate(context.Background(), Request{Prompt: "p"})
	if err != nil || out != "ok" {
		t.Fatalf("unexpected result %q, %v", out, err)
	}
	if !strings.Contains(raw, `"text":"p"`) {
		t.Fatalf("prompt missing from %s", raw)
	}
	if strings.Contains(raw, "generationConfig") {
		t.Fatalf("expected no generation config in %s", raw)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := map[string]struct {
		status int
		body   string
		is     error
	}{
		"status":        {status: http.StatusTooManyRequests, body: `quota`},
		"no candidates": {status: http.StatusOK, body: `{"candidates":[]}`, is: ErrEmptyResponse},
		"blank text":    {status: http.StatusOK, body: `{"candidates":[{"content":{"parts":[]}}]}`, is: ErrEmptyResponse},
		"bad json":      {status: http.StatusOK, body: `nope`},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}))
			defer srv.Close()
			_, err := New(Config{APIKey: "secret-key", Endpoint: srv.URL}).Generate(context.Background(), Request{Prompt: "p"})
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.is != nil && !errors.Is(err, tc.is) {
				t.Fatalf("expected %v, got %v", tc.is, err)
			}
			if strings.Contains(err.Error(), "secret-key") {
				t.Fatalf("error leaked key: %v", err)
			}
		})
	}
}

func TestGenerateRequiresKey(t *testing.T) {
	if _, err := New(Config{}).Generate(context.Background(), Request{Prompt: "p"}); err == nil {
		t.Fatalf("expected missing key error")
	}
}

func TestStripFences(t *testing.T) {
	in := "Here you go:\n```json\n{\"items\":[]}\n```\n"
	if got := StripFences(in); got != `{"items":[]}` {
		t.Fatalf("unexpected %q", got)
	}
}
