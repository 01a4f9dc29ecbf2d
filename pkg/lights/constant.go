package lights

import (
	"github.com/google/uuid"

	"github.com/df07/go-radiometer/pkg/core"
	"github.com/df07/go-radiometer/pkg/spectrum"
)

// ConstantEmitter is an infinitely distant environment emitting the same
// radiance in every direction. The radiance may vary with wavelength.
type ConstantEmitter struct {
	id          string
	radiance    spectrum.Response
	worldCenter core.Vec3
	worldRadius float64
}

// NewConstantEmitter creates an environment emitter with spectral radiance.
// An empty id is replaced by a generated one.
func NewConstantEmitter(id string, radiance spectrum.Response) *ConstantEmitter {
	if id == "" {
		id = uuid.NewString()
	}
	return &ConstantEmitter{id: id, radiance: radiance}
}

// NewUniformConstantEmitter emits radiance L at every visible wavelength
func NewUniformConstantEmitter(id string, radiance float64) *ConstantEmitter {
	return NewConstantEmitter(id, spectrum.NewUniformFull(radiance))
}

func (e *ConstantEmitter) ID() string {
	return e.id
}

// Eval evaluates the radiance at the ray's wavelengths, independent of direction
func (e *ConstantEmitter) Eval(ray core.Ray) core.Spectrum {
	return e.radiance.Eval(core.SurfaceInteraction{}, ray.Wavelengths)
}

// Radiance returns the spectral radiance function
func (e *ConstantEmitter) Radiance() spectrum.Response {
	return e.radiance
}

// Preprocess implements the Preprocessor interface - sets world bounds from scene
func (e *ConstantEmitter) Preprocess(worldCenter core.Vec3, worldRadius float64) error {
	e.worldCenter = worldCenter
	e.worldRadius = worldRadius
	return nil
}

// WorldBounds returns the scene bounding sphere seen at preprocessing
func (e *ConstantEmitter) WorldBounds() core.BoundingSphere {
	return core.BoundingSphere{Center: e.worldCenter, Radius: e.worldRadius}
}
