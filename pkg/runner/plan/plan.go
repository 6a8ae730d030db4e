// Package plan asks the meal planner for portions and prints them.
package plan

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/weiwei/pkg/app"
	"tableflip.dev/weiwei/pkg/gateway"
	"tableflip.dev/weiwei/pkg/printers"
)

type Plan struct {
	App     *app.Service
	Printer *printers.PrettyPrint
	Food    string
}

func (n *Plan) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not plan, no app")
	}
	p, err := n.App.Analyze(ctx, n.Food)
	if err != nil {
		var af *gateway.AnalysisFailure
		if errors.As(err, &af) {
			return fmt.Errorf("%s: %w", gateway.AnalysisRetryMessage, err)
		}
		return err
	}
	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	pp.Plan(p)
	return nil
}
