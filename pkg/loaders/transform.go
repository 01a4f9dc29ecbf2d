package loaders

import (
	"fmt"

	"github.com/df07/go-radiometer/pkg/core"
)

// parseToWorld reads the optional to_world node of p. Accepted forms:
//
//	to_world: {matrix: [16 numbers, row-major]}
//	to_world: {look_at: {origin: [..], target: [..], up: [..]}}
//	to_world: {translate: [..], rotate: {axis: [..], angle: deg}, scale: s | [..]}
//
// The last form composes as translate * rotate * scale.
func parseToWorld(p *Properties) (*core.Transform, error) {
	tp, err := p.Child("to_world")
	if err != nil || tp == nil {
		return nil, err
	}

	var t core.Transform
	switch {
	case tp.Has("matrix"):
		t, err = parseMatrix(tp)
	case tp.Has("look_at"):
		t, err = parseLookAt(tp)
	default:
		t, err = parseTRS(tp)
	}
	if err != nil {
		return nil, err
	}
	return &t, tp.CheckUnqueried()
}

func parseMatrix(p *Properties) (core.Transform, error) {
	values, err := p.Floats("matrix")
	if err != nil {
		return core.Transform{}, err
	}
	if len(values) != 16 {
		return core.Transform{}, fmt.Errorf("%w: %s.matrix needs 16 entries, got %d", ErrInvalidValue, p.Path(), len(values))
	}
	var rows [4][4]float64
	for i, v := range values {
		rows[i/4][i%4] = v
	}
	return core.NewTransformFromRows(rows), nil
}

func parseLookAt(p *Properties) (core.Transform, error) {
	lp, err := p.Child("look_at")
	if err != nil {
		return core.Transform{}, err
	}
	origin, err := lp.Vec3("origin")
	if err != nil {
		return core.Transform{}, err
	}
	target, err := lp.Vec3("target")
	if err != nil {
		return core.Transform{}, err
	}
	up, err := lp.Vec3("up")
	if err != nil {
		return core.Transform{}, err
	}
	if origin == nil || target == nil || up == nil {
		return core.Transform{}, fmt.Errorf("%w: %s needs origin, target and up", ErrInvalidValue, lp.Path())
	}

	forward := target.Subtract(*origin)
	if forward.IsZero() || up.Cross(forward).IsZero() {
		return core.Transform{}, fmt.Errorf("%w: %s: degenerate frame", ErrInvalidValue, lp.Path())
	}
	return core.LookAt(*origin, *target, *up), lp.CheckUnqueried()
}

func parseTRS(p *Properties) (core.Transform, error) {
	t := core.IdentityTransform()

	translate, err := p.Vec3("translate")
	if err != nil {
		return t, err
	}
	if translate != nil {
		t = t.Mul(core.Translate(*translate))
	}

	rp, err := p.Child("rotate")
	if err != nil {
		return t, err
	}
	if rp != nil {
		axis, err := rp.Vec3("axis")
		if err != nil {
			return t, err
		}
		if axis == nil || axis.IsZero() {
			return t, fmt.Errorf("%w: %s needs a non-zero axis", ErrInvalidValue, rp.Path())
		}
		angle, err := rp.Float("angle", 0)
		if err != nil {
			return t, err
		}
		if err := rp.CheckUnqueried(); err != nil {
			return t, err
		}
		t = t.Mul(core.Rotate(*axis, angle))
	}

	if p.Has("scale") {
		var scale core.Vec3
		if p.IsScalar("scale") {
			s, err := p.Float("scale", 1)
			if err != nil {
				return t, err
			}
			scale = core.NewVec3(s, s, s)
		} else {
			v, err := p.Vec3("scale")
			if err != nil {
				return t, err
			}
			if v == nil {
				return t, fmt.Errorf("%w: %s.scale is empty", ErrInvalidValue, p.Path())
			}
			scale = *v
		}
		t = t.Mul(core.Scale(scale))
	}
	return t, nil
}
