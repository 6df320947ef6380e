//go:build headless

package pipeline

import (
	"context"
	"errors"

	"github.com/retroenv/retrochip8/internal/engine"
	"github.com/retroenv/retrochip8/internal/options"
)

var errNoWindowSupport = errors.New("built without window support, use -headless")

func (p *Pipeline) runWindow(_ context.Context, _ *engine.Engine, _ *engine.KeyState, _ options.Program) error {
	return errNoWindowSupport
}
