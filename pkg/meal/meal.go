// Package meal holds the structured serving plan produced from a free-text
// food description.
package meal

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// OverloadThreshold is the stomach load above which a plan is flagged as too much.
const OverloadThreshold = 85

// Item is one dish in a plan.
type Item struct {
	Name                 string  `json:"name"`
	WeightGrams          float64 `json:"weight_grams"`
	IngredientsBreakdown string  `json:"ingredients_breakdown,omitempty"`
}

// Plan is a portioned recommendation for one meal.
type Plan struct {
	Items                 []Item  `json:"items"`
	StomachLoadPercentage float64 `json:"stomachLoadPercentage"`
	Advice                string  `json:"advice"`
}

var ErrInvalidPlan = errors.New("meal: invalid plan")

// Validate checks the plan has the shape the planner can render.
func (p *Plan) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: empty", ErrInvalidPlan)
	}
	if len(p.Items) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalidPlan)
	}
	for i, item := range p.Items {
		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("%w: item %d has no name", ErrInvalidPlan, i)
		}
		if item.WeightGrams < 0 || math.IsNaN(item.WeightGrams) || math.IsInf(item.WeightGrams, 0) {
			return fmt.Errorf("%w: item %q has weight %v", ErrInvalidPlan, item.Name, item.WeightGrams)
		}
	}
	if p.StomachLoadPercentage < 0 || math.IsNaN(p.StomachLoadPercentage) || math.IsInf(p.StomachLoadPercentage, 0) {
		return fmt.Errorf("%w: stomach load %v", ErrInvalidPlan, p.StomachLoadPercentage)
	}
	if strings.TrimSpace(p.Advice) == "" {
		return fmt.Errorf("%w: no advice", ErrInvalidPlan)
	}
	return nil
}

// Summary joins the item names, as carried to the journal as pending food.
func (p *Plan) Summary() string {
	names := make([]string, 0, len(p.Items))
	for _, item := range p.Items {
		names = append(names, item.Name)
	}
	return strings.Join(names, " + ")
}

// FillLevel is the stomach load capped at 100 for display.
func (p *Plan) FillLevel() float64 {
	return math.Min(p.StomachLoadPercentage, 100)
}

func (p *Plan) Overloaded() bool {
	return p.StomachLoadPercentage > OverloadThreshold
}

// TotalGrams sums the recommended weight of every item.
func (p *Plan) TotalGrams() float64 {
	total := 0.0
	for _, item := range p.Items {
		total += item.WeightGrams
	}
	return total
}
