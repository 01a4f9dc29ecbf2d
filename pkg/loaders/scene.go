package loaders

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-radiometer/pkg/core"
	"github.com/df07/go-radiometer/pkg/film"
	"github.com/df07/go-radiometer/pkg/geometry"
	"github.com/df07/go-radiometer/pkg/integrator"
	"github.com/df07/go-radiometer/pkg/lights"
	"github.com/df07/go-radiometer/pkg/log"
	"github.com/df07/go-radiometer/pkg/material"
	"github.com/df07/go-radiometer/pkg/scene"
	"github.com/df07/go-radiometer/pkg/sensor"
	"github.com/df07/go-radiometer/pkg/spectrum"
)

var logger = log.New("loaders")

// SceneFile is a fully constructed scene description
type SceneFile struct {
	Scene      *scene.Scene
	Integrator *integrator.PathTracingIntegrator
}

// LoadSceneFile reads and builds a YAML scene description
func LoadSceneFile(filename string) (*SceneFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	sf, err := ParseScene(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return sf, nil
}

// ParseScene builds a scene from a YAML document. The scene is not
// preprocessed.
func ParseScene(reader io.Reader) (*SceneFile, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(reader).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty scene document", ErrInvalidValue)
		}
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty scene document", ErrInvalidValue)
	}

	root, err := newProperties("scene", doc.Content[0])
	if err != nil {
		return nil, err
	}

	sf := &SceneFile{Scene: scene.New()}

	if sf.Integrator, err = parseIntegrator(root); err != nil {
		return nil, err
	}

	shapes, err := root.List("shapes")
	if err != nil {
		return nil, err
	}
	for _, p := range shapes {
		shape, err := parseShape(p)
		if err != nil {
			return nil, err
		}
		sf.Scene.AddShape(shape)
	}

	emitters, err := root.List("emitters")
	if err != nil {
		return nil, err
	}
	for _, p := range emitters {
		emitter, err := parseEmitter(p)
		if err != nil {
			return nil, err
		}
		sf.Scene.AddEmitter(emitter)
	}

	sensors, err := root.List("sensors")
	if err != nil {
		return nil, err
	}
	for _, p := range sensors {
		sn, err := parseSensor(p, nil)
		if err != nil {
			return nil, err
		}
		sf.Scene.AddSensor(sn)
	}

	if err := root.CheckUnqueried(); err != nil {
		return nil, err
	}

	logger.Infof("loaded scene: %d shapes, %d emitters, %d sensors",
		len(sf.Scene.Shapes), len(sf.Scene.Emitters), len(sf.Scene.Sensors))
	return sf, nil
}

func parseIntegrator(root *Properties) (*integrator.PathTracingIntegrator, error) {
	cfg := integrator.DefaultConfig()
	p, err := root.Child("integrator")
	if err != nil || p == nil {
		return integrator.NewPathTracingIntegrator(cfg), err
	}

	typ, err := p.Type()
	if err != nil {
		return nil, err
	}
	if typ != "path" {
		return nil, fmt.Errorf("%w: %s: integrator %q", ErrUnknownType, p.Path(), typ)
	}
	if cfg.MaxDepth, err = p.Int("max_depth", cfg.MaxDepth); err != nil {
		return nil, err
	}
	if cfg.RRDepth, err = p.Int("rr_depth", cfg.RRDepth); err != nil {
		return nil, err
	}
	return integrator.NewPathTracingIntegrator(cfg), p.CheckUnqueried()
}

// irradianceHost is a shape that can carry an irradiance meter
type irradianceHost interface {
	geometry.Shape
	AttachIrradianceMeter(cfg sensor.IrradianceMeterConfig) (*sensor.IrradianceMeter, error)
}

func parseShape(p *Properties) (geometry.Shape, error) {
	typ, err := p.Type()
	if err != nil {
		return nil, err
	}
	id, err := p.String("id", "")
	if err != nil {
		return nil, err
	}
	mat, err := parseMaterial(p)
	if err != nil {
		return nil, err
	}

	var shape irradianceHost
	switch typ {
	case "sphere":
		center, err := p.Vec3("center")
		if err != nil {
			return nil, err
		}
		if center == nil {
			center = &core.Vec3{}
		}
		radius, err := p.Float("radius", 1)
		if err != nil {
			return nil, err
		}
		if radius <= 0 {
			return nil, fmt.Errorf("%w: %s.radius must be positive, got %g", ErrInvalidValue, p.Path(), radius)
		}
		shape = geometry.NewSphere(id, *center, radius, mat)
	case "rectangle":
		toWorld, err := parseToWorld(p)
		if err != nil {
			return nil, err
		}
		if toWorld == nil {
			identity := core.IdentityTransform()
			toWorld = &identity
		}
		shape = geometry.NewRectangle(id, *toWorld, mat)
	default:
		return nil, fmt.Errorf("%w: %s: shape %q", ErrUnknownType, p.Path(), typ)
	}

	sp, err := p.Child("sensor")
	if err != nil {
		return nil, err
	}
	if sp != nil {
		if _, err := parseSensor(sp, shape); err != nil {
			return nil, err
		}
	}

	return shape, p.CheckUnqueried()
}

func parseEmitter(p *Properties) (lights.Emitter, error) {
	typ, err := p.Type()
	if err != nil {
		return nil, err
	}
	if typ != "constant" {
		return nil, fmt.Errorf("%w: %s: emitter %q", ErrUnknownType, p.Path(), typ)
	}
	id, err := p.String("id", "")
	if err != nil {
		return nil, err
	}

	var emitter *lights.ConstantEmitter
	if p.IsScalar("radiance") {
		radiance, err := p.Float("radiance", 1)
		if err != nil {
			return nil, err
		}
		emitter = lights.NewUniformConstantEmitter(id, radiance)
	} else {
		rp, err := p.Child("radiance")
		if err != nil {
			return nil, err
		}
		if rp == nil {
			emitter = lights.NewUniformConstantEmitter(id, 1)
		} else {
			response, err := parseSpectrum(rp)
			if err != nil {
				return nil, err
			}
			emitter = lights.NewConstantEmitter(id, response)
		}
	}
	return emitter, p.CheckUnqueried()
}

// parseSensor builds a sensor node. host is the enclosing shape, nil for
// top-level sensors.
func parseSensor(p *Properties, host irradianceHost) (sensor.Sensor, error) {
	typ, err := p.Type()
	if err != nil {
		return nil, err
	}
	if host != nil && typ != "irradiancemeter" {
		return nil, fmt.Errorf("%w: %s: only an irradiancemeter can be attached to a shape, got %q",
			ErrUnknownType, p.Path(), typ)
	}

	base, err := parseBaseConfig(p, typ)
	if err != nil {
		return nil, err
	}

	var sn sensor.Sensor
	switch typ {
	case "distant":
		cfg := sensor.DistantConfig{BaseConfig: base}
		if cfg.Direction, err = p.Vec3("direction"); err != nil {
			return nil, err
		}
		if cfg.Target, err = p.Vec3("target"); err != nil {
			return nil, err
		}
		if cfg.Width, err = p.Int("width", 1); err != nil {
			return nil, err
		}
		if cfg.Film == nil {
			cfg.Film = film.MustNew(max(cfg.Width, 1), 1)
		}
		sn, err = sensor.NewDistantSensor(cfg)
	case "irradiancemeter":
		cfg := sensor.IrradianceMeterConfig{BaseConfig: base}
		if cfg.Film == nil {
			cfg.Film = film.MustNew(1, 1)
		}
		if host == nil {
			// No owning shape: let the sensor report the missing parameter
			sn, err = sensor.NewIrradianceMeter(cfg, nil)
		} else {
			sn, err = host.AttachIrradianceMeter(cfg)
		}
	case "radiancemeter":
		cfg := sensor.RadianceMeterConfig{BaseConfig: base}
		if cfg.ToWorld, err = parseToWorld(p); err != nil {
			return nil, err
		}
		if cfg.Origin, err = p.Vec3("origin"); err != nil {
			return nil, err
		}
		if cfg.Direction, err = p.Vec3("direction"); err != nil {
			return nil, err
		}
		if cfg.Film == nil {
			cfg.Film = film.MustNew(1, 1)
		}
		sn, err = sensor.NewRadianceMeter(cfg)
	default:
		return nil, fmt.Errorf("%w: %s: sensor %q", ErrUnknownType, p.Path(), typ)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Path(), err)
	}

	return sn, p.CheckUnqueried()
}

func parseBaseConfig(p *Properties, kind string) (sensor.BaseConfig, error) {
	var cfg sensor.BaseConfig
	var err error

	if cfg.ID, err = p.String("id", ""); err != nil {
		return cfg, err
	}

	fp, err := p.Child("film")
	if err != nil {
		return cfg, err
	}
	if fp != nil {
		if cfg.Film, err = parseFilm(fp); err != nil {
			return cfg, err
		}
	}

	sp, err := p.Child("srf")
	if err != nil {
		return cfg, err
	}
	if sp != nil {
		if cfg.SRF, err = parseSpectrum(sp); err != nil {
			return cfg, err
		}
	}

	sampler, err := p.Child("sampler")
	if err != nil {
		return cfg, err
	}
	if sampler != nil {
		if cfg.Sampler, err = parseSampler(sampler); err != nil {
			return cfg, err
		}
	}

	logger.Debugf("%s: %s sensor with film=%t srf=%t sampler=%t", p.Path(), kind, fp != nil, sp != nil, sampler != nil)
	return cfg, nil
}

func parseFilm(p *Properties) (*film.Film, error) {
	typ, err := p.Type()
	if err != nil {
		return nil, err
	}
	if typ != "hdrfilm" {
		return nil, fmt.Errorf("%w: %s: film %q", ErrUnknownType, p.Path(), typ)
	}
	width, err := p.Int("width", 1)
	if err != nil {
		return nil, err
	}
	height, err := p.Int("height", 1)
	if err != nil {
		return nil, err
	}
	f, err := film.New(width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidValue, p.Path(), err)
	}
	return f, p.CheckUnqueried()
}

func parseSampler(p *Properties) (core.SamplerConfig, error) {
	cfg := core.DefaultSamplerConfig()
	typ, err := p.Type()
	if err != nil {
		return cfg, err
	}
	if typ != "independent" {
		return cfg, fmt.Errorf("%w: %s: sampler %q", ErrUnknownType, p.Path(), typ)
	}
	if cfg.SampleCount, err = p.Int("sample_count", cfg.SampleCount); err != nil {
		return cfg, err
	}
	if cfg.SampleCount <= 0 {
		return cfg, fmt.Errorf("%w: %s.sample_count must be positive", ErrInvalidValue, p.Path())
	}
	if cfg.Seed, err = p.Uint64("seed", 0); err != nil {
		return cfg, err
	}
	return cfg, p.CheckUnqueried()
}

// parseMaterial reads a shape's reflectance, given either as a plain number
// or as a spectrum node. Zero or absent reflectance leaves the shape black.
func parseMaterial(p *Properties) (material.Material, error) {
	if !p.Has("reflectance") {
		return nil, nil
	}
	if !p.IsScalar("reflectance") {
		sp, err := p.Child("reflectance")
		if err != nil {
			return nil, err
		}
		albedo, err := parseSpectrum(sp)
		if err != nil {
			return nil, err
		}
		return material.NewLambertian(albedo), nil
	}

	reflectance, err := p.Float("reflectance", 0)
	if err != nil {
		return nil, err
	}
	if reflectance < 0 || reflectance > 1 {
		return nil, fmt.Errorf("%w: %s.reflectance must lie in [0, 1], got %g", ErrInvalidValue, p.Path(), reflectance)
	}
	if reflectance == 0 {
		return nil, nil
	}
	return material.NewDiffuse(reflectance), nil
}

func parseSpectrum(p *Properties) (spectrum.Response, error) {
	typ, err := p.Type()
	if err != nil {
		return nil, err
	}
	lambdaMin, err := p.Float("lambda_min", core.WavelengthMin)
	if err != nil {
		return nil, err
	}
	lambdaMax, err := p.Float("lambda_max", core.WavelengthMax)
	if err != nil {
		return nil, err
	}

	var response spectrum.Response
	switch typ {
	case "uniform":
		value, err := p.Float("value", 1)
		if err != nil {
			return nil, err
		}
		if response, err = spectrum.NewUniform(value, lambdaMin, lambdaMax); err != nil {
			return nil, fmt.Errorf("%s: %w", p.Path(), err)
		}
	case "interpolated":
		values, err := p.Floats("values")
		if err != nil {
			return nil, err
		}
		if response, err = spectrum.NewInterpolated(lambdaMin, lambdaMax, values); err != nil {
			return nil, fmt.Errorf("%s: %w", p.Path(), err)
		}
	default:
		return nil, fmt.Errorf("%w: %s: spectrum %q", ErrUnknownType, p.Path(), typ)
	}
	return response, p.CheckUnqueried()
}
