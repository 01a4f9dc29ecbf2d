package scene

import (
	"fmt"

	"github.com/df07/go-radiometer/pkg/core"
	"github.com/df07/go-radiometer/pkg/geometry"
	"github.com/df07/go-radiometer/pkg/lights"
	"github.com/df07/go-radiometer/pkg/log"
	"github.com/df07/go-radiometer/pkg/sensor"
)

var logger = log.New("scene")

// Offset that keeps secondary rays from re-hitting the surface they leave
const tMin = 0.001

// Scene contains all the elements needed for a measurement
type Scene struct {
	Shapes   []geometry.Shape
	Emitters []lights.Emitter
	Sensors  []sensor.Sensor // Includes meters attached to shapes
	BVH      *geometry.BVH   // Acceleration structure, built by Preprocess

	bounds core.BoundingSphere
}

// New creates an empty scene
func New() *Scene {
	return &Scene{}
}

// AddShape adds a shape and, when it carries an irradiance meter, its sensor
func (s *Scene) AddShape(shape geometry.Shape) {
	s.Shapes = append(s.Shapes, shape)
	if meter := shape.Sensor(); meter != nil {
		s.Sensors = append(s.Sensors, meter)
	}
}

// AddEmitter adds an emitter to the scene
func (s *Scene) AddEmitter(emitter lights.Emitter) {
	s.Emitters = append(s.Emitters, emitter)
}

// AddSensor adds a free-standing sensor
func (s *Scene) AddSensor(sn sensor.Sensor) {
	s.Sensors = append(s.Sensors, sn)
}

// Sensor looks up a sensor by id
func (s *Scene) Sensor(id string) (sensor.Sensor, bool) {
	for _, sn := range s.Sensors {
		if sn.ID() == id {
			return sn, true
		}
	}
	return nil, false
}

// Preprocess prepares the scene for rendering: builds the BVH and hands the
// scene bounding sphere to every emitter and sensor that needs it.
func (s *Scene) Preprocess() error {
	s.BVH = geometry.NewBVH(s.Shapes)
	s.bounds = s.BVH.BoundingBox().BoundingSphere()

	for _, emitter := range s.Emitters {
		if preprocessor, ok := emitter.(sensor.Preprocessor); ok {
			if err := preprocessor.Preprocess(s.bounds.Center, s.bounds.Radius); err != nil {
				return fmt.Errorf("preprocess emitter %s: %w", emitter.ID(), err)
			}
		}
	}

	for _, sn := range s.Sensors {
		if preprocessor, ok := sn.(sensor.Preprocessor); ok {
			if err := preprocessor.Preprocess(s.bounds.Center, s.bounds.Radius); err != nil {
				return fmt.Errorf("preprocess sensor %s: %w", sn.ID(), err)
			}
		}
	}

	logger.Infof("scene ready: %d shapes, %d emitters, %d sensors, bounds center=%v radius=%g",
		len(s.Shapes), len(s.Emitters), len(s.Sensors), s.bounds.Center, s.bounds.Radius)
	return nil
}

// BoundingBox returns the bounds of all shapes; invalid for an empty scene
func (s *Scene) BoundingBox() core.AABB {
	box := core.EmptyAABB()
	for _, shape := range s.Shapes {
		box = box.Union(shape.BoundingBox())
	}
	return box
}

// BoundingSphere returns the sphere computed by Preprocess
func (s *Scene) BoundingSphere() core.BoundingSphere {
	return s.bounds
}

// RayIntersect returns the closest hit along the ray and the shape hit.
// Before Preprocess every ray misses.
func (s *Scene) RayIntersect(ray core.Ray) (*core.SurfaceInteraction, geometry.Shape, bool) {
	if s.BVH == nil {
		return nil, nil, false
	}
	return s.BVH.Hit(ray, tMin, ray.MaxT)
}

// Radiance returns the summed emitter radiance along an escaping ray
func (s *Scene) Radiance(ray core.Ray) core.Spectrum {
	var total core.Spectrum
	for _, emitter := range s.Emitters {
		total = total.Add(emitter.Eval(ray))
	}
	return total
}
