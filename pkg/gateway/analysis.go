package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"tableflip.dev/weiwei/pkg/clock"
	"tableflip.dev/weiwei/pkg/gemini"
	"tableflip.dev/weiwei/pkg/meal"
)

// MockPlan is the fixed plan returned when no credential is configured.
func MockPlan() meal.Plan {
	return meal.Plan{
		Items: []meal.Item{
			{Name: "番茄炒蛋", WeightGrams: 250, IngredientsBreakdown: "番茄 150g, 鸡蛋 100g (约2个)"},
			{Name: "米饭", WeightGrams: 150, IngredientsBreakdown: "熟米饭 150g"},
			{Name: "清炒时蔬", WeightGrams: 100, IngredientsBreakdown: "青菜 100g, 蒜末 5g"},
		},
		StomachLoadPercentage: 75,
		Advice:                "API Mock: 只吃番茄炒蛋有点单调哦，我帮你加了一份清炒时蔬，这样膳食纤维更充足！",
	}
}

// MockAnalyzer returns MockPlan after Delay, whatever the input.
type MockAnalyzer struct {
	Delay  time.Duration
	Clock  clock.Clock
	Logger *log.Logger
}

func (m *MockAnalyzer) Analyze(ctx context.Context, food string) (meal.Plan, error) {
	if strings.TrimSpace(food) == "" {
		return meal.Plan{}, ErrEmptyInput
	}
	orDefault(m.Logger).Printf("gateway: no API key configured, returning mock meal plan")
	if err := clock.Sleep(ctx, m.Clock, m.Delay); err != nil {
		return meal.Plan{}, err
	}
	return MockPlan(), nil
}

// LiveAnalyzer asks the provider for a schema-constrained plan. It makes a
// single attempt.
type LiveAnalyzer struct {
	Client  Generator
	Timeout time.Duration
	Logger  *log.Logger
}

func (a *LiveAnalyzer) Analyze(ctx context.Context, food string) (meal.Plan, error) {
	food = strings.TrimSpace(food)
	if food == "" {
		return meal.Plan{}, ErrEmptyInput
	}
	ctx, cancel := withTimeout(ctx, a.Timeout)
	defer cancel()

	text, err := a.Client.Generate(ctx, gemini.Request{
		Prompt: analysisPrompt(food),
		Schema: planSchema(),
	})
	if err != nil {
		orDefault(a.Logger).Printf("gateway: analysis failed: %v", err)
		return meal.Plan{}, &AnalysisFailure{Err: err}
	}
	plan, err := ParsePlan(text)
	if err != nil {
		orDefault(a.Logger).Printf("gateway: analysis response rejected: %v", err)
		return meal.Plan{}, &AnalysisFailure{Err: err}
	}
	return plan, nil
}

type wirePlan struct {
	Items                 *[]meal.Item `json:"items"`
	StomachLoadPercentage *float64     `json:"stomachLoadPercentage"`
	Advice                *string      `json:"advice"`
}

// ParsePlan decodes a provider payload, requiring every schema field.
func ParsePlan(text string) (meal.Plan, error) {
	var w wirePlan
	if err := json.Unmarshal([]byte(gemini.StripFences(text)), &w); err != nil {
		return meal.Plan{}, err
	}
	switch {
	case w.Items == nil:
		return meal.Plan{}, errors.New("missing items")
	case w.StomachLoadPercentage == nil:
		return meal.Plan{}, errors.New("missing stomachLoadPercentage")
	case w.Advice == nil:
		return meal.Plan{}, errors.New("missing advice")
	}
	plan := meal.Plan{
		Items:                 *w.Items,
		StomachLoadPercentage: *w.StomachLoadPercentage,
		Advice:                *w.Advice,
	}
	if err := plan.Validate(); err != nil {
		return meal.Plan{}, err
	}
	return plan, nil
}

func planSchema() *gemini.Schema {
	return &gemini.Schema{
		Type: gemini.TypeObject,
		Properties: map[string]*gemini.Schema{
			"items": {
				Type: gemini.TypeArray,
				Items: &gemini.Schema{
					Type: gemini.TypeObject,
					Properties: map[string]*gemini.Schema{
						"name":                  {Type: gemini.TypeString, Description: "菜品名称，如“番茄炒蛋”"},
						"ingredients_breakdown": {Type: gemini.TypeString, Description: "主要食材与克重，如“番茄 150g, 鸡蛋 100g”"},
						"weight_grams":          {Type: gemini.TypeNumber, Description: "该菜品的推荐总克重"},
					},
					Required: []string{"name", "weight_grams", "ingredients_breakdown"},
				},
			},
			"stomachLoadPercentage": {Type: gemini.TypeNumber, Description: "吃完后的胃部充盈度，0-100，可超过100"},
			"advice":                {Type: gemini.TypeString, Description: "一句搭配建议；若补充了食物必须说明原因"},
		},
		Required: []string{"items", "stomachLoadPercentage", "advice"},
	}
}
