package entity

// Viewport is the drawable area in abstract screen units
type Viewport struct {
	Width  float64
	Height float64
}

// Renderer draws vehicles. Clear starts a frame at the shared render scale and
// Present finishes it.
type Renderer interface {
	Viewport() Viewport
	Clear(scale float64)
	RenderRocket(rocket *Rocket)
	RenderIFO(ifo *IFO)
	Present()
}
