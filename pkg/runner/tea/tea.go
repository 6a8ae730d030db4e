package teaui

import (
	"context"
	"errors"

	appsvc "tableflip.dev/weiwei/pkg/app"
	tuiapp "tableflip.dev/weiwei/pkg/tui/app"
)

// Tea launches the full-screen planner, journal and calm-down UI.
type Tea struct {
	App *appsvc.Service
}

func (t *Tea) Do(ctx context.Context) error {
	if t.App == nil {
		return errors.New("can not start the ui, no app")
	}
	return tuiapp.Run(t.App)
}
