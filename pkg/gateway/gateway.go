// Package gateway turns user input into intelligence-provider calls. Each
// gateway has a live implementation and a deterministic mock; Select picks
// one pair once, based on whether a credential is configured.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"tableflip.dev/weiwei/pkg/clock"
	"tableflip.dev/weiwei/pkg/entry"
	"tableflip.dev/weiwei/pkg/gemini"
	"tableflip.dev/weiwei/pkg/meal"
)

const (
	MockAnalysisDelay = 1500 * time.Millisecond
	MockReportDelay   = 2 * time.Second
)

// ErrEmptyInput is returned when the food description is blank.
var ErrEmptyInput = errors.New("gateway: food description is empty")

// Analyzer converts a free-text food description into a meal plan.
type Analyzer interface {
	Analyze(ctx context.Context, food string) (meal.Plan, error)
}

// Reporter summarizes journal entries into a short narrative.
type Reporter interface {
	// Report returns a *ReportFailure when the upstream call fails.
	Report(ctx context.Context, entries []entry.Entry) (string, error)
}

// Generator is the provider capability the live gateways depend on.
type Generator interface {
	Generate(ctx context.Context, req gemini.Request) (string, error)
}

// Settings configures Select.
type Settings struct {
	APIKey     string
	Model      string
	Endpoint   string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *log.Logger
	Clock      clock.Clock
	// MockDelay overrides both artificial mock delays when non-nil.
	MockDelay *time.Duration
}

// Gateways is the strategy pair chosen at startup.
type Gateways struct {
	Analyzer Analyzer
	Reporter Reporter
	Live     bool
}

// Select returns live gateways when an API key is present and mocks otherwise.
func Select(s Settings) Gateways {
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}
	if strings.TrimSpace(s.APIKey) == "" {
		analysisDelay, reportDelay := MockAnalysisDelay, MockReportDelay
		if s.MockDelay != nil {
			analysisDelay, reportDelay = *s.MockDelay, *s.MockDelay
		}
		return Gateways{
			Analyzer: &MockAnalyzer{Delay: analysisDelay, Clock: s.Clock, Logger: logger},
			Reporter: &MockReporter{Delay: reportDelay, Clock: s.Clock, Logger: logger},
		}
	}
	client := gemini.New(gemini.Config{
		APIKey:     s.APIKey,
		Model:      s.Model,
		Endpoint:   s.Endpoint,
		HTTPClient: s.HTTPClient,
	})
	return Gateways{
		Analyzer: &LiveAnalyzer{Client: client, Timeout: s.Timeout, Logger: logger},
		Reporter: &LiveReporter{Client: client, Timeout: s.Timeout, Logger: logger},
		Live:     true,
	}
}

// AnalysisFailure reports an upstream error or a response that is not a valid plan.
type AnalysisFailure struct {
	Err error
}

// AnalysisRetryMessage is what a caller shows the user after an AnalysisFailure.
const AnalysisRetryMessage = "抱歉，分析出了点小问题，请重试一下。"

func (e *AnalysisFailure) Error() string {
	return fmt.Sprintf("gateway: analysis failed: %v", e.Err)
}

func (e *AnalysisFailure) Unwrap() error {
	return e.Err
}

// ReportFailure reports an upstream error while generating a report.
type ReportFailure struct {
	Err error
}

func (e *ReportFailure) Error() string {
	return fmt.Sprintf("gateway: report failed: %v", e.Err)
}

func (e *ReportFailure) Unwrap() error {
	return e.Err
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func orDefault(l *log.Logger) *log.Logger {
	if l == nil {
		return log.Default()
	}
	return l
}

// Discard is a logger that drops everything, for tests and quiet runs.
var Discard = log.New(io.Discard, "", 0)
