package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"tableflip.dev/weiwei/pkg/clock"
	"tableflip.dev/weiwei/pkg/entry"
	"tableflip.dev/weiwei/pkg/gemini"
)

const (
	// ReportApology replaces the report when the provider call fails.
	ReportApology = "抱歉，生成报告时出了点小差错，请稍后再试。"
	// ReportEmpty replaces the report when the provider answers with no text.
	ReportEmpty = "生成报告失败"
)

// Summarize runs r and degrades any failure to a user-visible placeholder.
// It only returns an error when ctx itself was cancelled.
func Summarize(ctx context.Context, r Reporter, entries []entry.Entry) (string, error) {
	text, err := r.Report(ctx, entries)
	if err == nil {
		return text, nil
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	var rf *ReportFailure
	if errors.As(err, &rf) && errors.Is(rf.Err, gemini.ErrEmptyResponse) {
		return ReportEmpty, nil
	}
	return ReportApology, nil
}

// MockReport is the templated summary used without a credential.
func MockReport(n int) string {
	return fmt.Sprintf("本周胃感简报\n\n本周共记录了 %d 次用餐感受。\n\n"+
		"分析发现：当你晚餐摄入大量淀粉类食物（如米饭）时，容易感到“撑到了”。而吃蔬菜和白肉时，身体反馈多为“刚好”。\n\n"+
		"建议：晚餐尝试减少一口主食，增加蔬菜比例。✨", n)
}

type MockReporter struct {
	Delay  time.Duration
	Clock  clock.Clock
	Logger *log.Logger
}

func (m *MockReporter) Report(ctx context.Context, entries []entry.Entry) (string, error) {
	orDefault(m.Logger).Printf("gateway: no API key configured, returning mock report")
	if err := clock.Sleep(ctx, m.Clock, m.Delay); err != nil {
		return "", err
	}
	return MockReport(len(entries)), nil
}

// LiveReporter asks the provider for a free-text report. The text is returned
// as-is; it is not validated.
type LiveReporter struct {
	Client  Generator
	Timeout time.Duration
	Logger  *log.Logger
}

func (r *LiveReporter) Report(ctx context.Context, entries []entry.Entry) (string, error) {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	text, err := r.Client.Generate(ctx, gemini.Request{Prompt: reportPrompt(entries)})
	if err != nil {
		orDefault(r.Logger).Printf("gateway: report generation failed: %v", err)
		return "", &ReportFailure{Err: err}
	}
	return strings.TrimSpace(text), nil
}
