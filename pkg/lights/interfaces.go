// Package lights provides the emitters that illuminate a measurement scene.
package lights

import "github.com/df07/go-radiometer/pkg/core"

// Emitter is a source of radiance seen by rays that leave the scene
type Emitter interface {
	ID() string

	// Eval returns the radiance carried back along an escaping ray, per
	// wavelength sample of the ray
	Eval(ray core.Ray) core.Spectrum
}
