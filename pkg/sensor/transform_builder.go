package sensor

import "github.com/df07/go-radiometer/pkg/core"

// TransformParams lists the ways a sensor's world transform can be specified.
// Precedence: ToWorld, then Origin with Direction or Target, then Direction
// alone when Directional is set.
type TransformParams struct {
	ToWorld   *core.Transform
	Origin    *core.Vec3
	Direction *core.Vec3
	Target    *core.Vec3

	// Directional accepts a direction without an origin (distant sensors);
	// the frame is then placed at the world origin.
	Directional bool
}

// BuildTransform resolves params into a world transform.
//
// Look-at frames have columns [left, up, forward, origin] where forward is
// the normalized direction and the up hint is the first tangent of
// core.CoordinateSystem(forward). The result depends only on the direction
// of the input vector, not its length.
func BuildTransform(kind Kind, params TransformParams) (*core.AnimatedTransform, error) {
	if params.ToWorld != nil {
		if params.Origin != nil || params.Direction != nil || params.Target != nil {
			logger.Debugf("%s: to_world supersedes origin/direction/target", kind)
		}
		return core.NewAnimatedTransform(*params.ToWorld), nil
	}

	origin := core.Vec3{}
	switch {
	case params.Origin != nil:
		origin = *params.Origin
		if !origin.IsFinite() {
			return nil, configError(kind, "origin", ErrInvalidDirection, "origin %v is not finite", origin)
		}
	case !params.Directional:
		if params.Direction != nil {
			return nil, configError(kind, "origin", ErrMissingParameter, "direction given without origin")
		}
		return nil, configError(kind, "to_world", ErrMissingParameter, "need to_world or origin and direction")
	}

	var forward core.Vec3
	switch {
	case params.Direction != nil:
		forward = *params.Direction
		if !forward.IsFinite() {
			return nil, configError(kind, "direction", ErrInvalidDirection, "direction %v is not finite", forward)
		}
		if forward.IsZero() {
			return nil, configError(kind, "direction", ErrInvalidDirection, "direction must be non-zero")
		}
	case params.Target != nil && params.Origin != nil:
		forward = params.Target.Subtract(origin)
		if !forward.IsFinite() {
			return nil, configError(kind, "target", ErrInvalidDirection, "target %v is not finite", *params.Target)
		}
		if forward.IsZero() {
			return nil, configError(kind, "target", ErrInvalidDirection, "target coincides with origin")
		}
	default:
		return nil, configError(kind, "direction", ErrMissingParameter, "a direction is required")
	}

	return core.NewAnimatedTransform(lookAtDirection(origin, forward)), nil
}

func lookAtDirection(origin, forward core.Vec3) core.Transform {
	dir := forward.Normalize()
	up, _ := core.CoordinateSystem(dir)
	return core.LookAtFrame(origin, dir, up)
}
