// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-rocketsim/pkg/entity"
	"github.com/opd-ai/go-rocketsim/pkg/logging"
)

// DefaultViewport is the window size the reference scenario was tuned for
var DefaultViewport = entity.Viewport{Width: 640, Height: 480}

// NullRenderer is a simple implementation of entity.Renderer that only logs
// at debug level. It backs headless runs.
type NullRenderer struct {
	logger   *logging.Logger
	viewport entity.Viewport
	frames   int
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer() *NullRenderer {
	return NewNullRendererWithLogger(logging.NewLogger(), DefaultViewport)
}

// NewNullRendererWithLogger creates a NullRenderer for a given viewport
func NewNullRendererWithLogger(logger *logging.Logger, vp entity.Viewport) *NullRenderer {
	return &NullRenderer{
		logger:   logger,
		viewport: vp,
	}
}

// Viewport implements entity.Renderer.
func (d *NullRenderer) Viewport() entity.Viewport {
	return d.viewport
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear(scale float64) {
	d.logger.Debug(context.Background(), "Clear called", "scale", scale)
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.frames++
	d.logger.Debug(context.Background(), "Present called", "frame", d.frames)
}

// Frames returns the number of presented frames
func (d *NullRenderer) Frames() int {
	return d.frames
}

// RenderRocket implements entity.Renderer.
func (d *NullRenderer) RenderRocket(rocket *entity.Rocket) {
	ctx := context.Background()
	if rocket == nil {
		d.logger.Debug(ctx, "RenderRocket called with nil rocket")
		return
	}
	d.logger.Debug(ctx, "RenderRocket called",
		"rocket_id", rocket.ID,
		"rocket_name", rocket.Name,
		"x", rocket.Position.X,
		"y", rocket.Position.Y,
		"thrusting", rocket.IsThrusting(),
	)
}

// RenderIFO implements entity.Renderer.
func (d *NullRenderer) RenderIFO(ifo *entity.IFO) {
	ctx := context.Background()
	if ifo == nil {
		d.logger.Debug(ctx, "RenderIFO called with nil ifo")
		return
	}
	d.logger.Debug(ctx, "RenderIFO called",
		"ifo_id", ifo.ID,
		"ifo_name", ifo.Name,
		"x", ifo.Position.X,
		"y", ifo.Position.Y,
	)
}
