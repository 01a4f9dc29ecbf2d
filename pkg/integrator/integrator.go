// Package integrator drives sensors: it draws samples, asks a sensor for
// rays, estimates the radiance they carry and accumulates the weighted
// result on the sensor's film.
package integrator

import (
	"context"
	"encoding/binary"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/df07/go-radiometer/pkg/core"
	"github.com/df07/go-radiometer/pkg/log"
	"github.com/df07/go-radiometer/pkg/scene"
	"github.com/df07/go-radiometer/pkg/sensor"
)

var logger = log.New("integrator")

// Config controls the path integrator
type Config struct {
	MaxDepth int // Longest path in vertices; <= 0 means unbounded
	RRDepth  int // Depth at which Russian roulette starts
}

// DefaultConfig mirrors the usual path tracer defaults
func DefaultConfig() Config {
	return Config{MaxDepth: -1, RRDepth: 5}
}

// RenderStats contains statistics about one sensor render
type RenderStats struct {
	SensorID     string
	TotalPixels  int
	TotalSamples int
	MeanValue    float64 // Average developed pixel value
	Duration     time.Duration
}

// Integrator estimates the radiance arriving along a ray
type Integrator interface {
	Li(ray core.Ray, sc *scene.Scene, sampler core.Sampler) core.Spectrum
}

// Render fills sn's film with sc as seen by the sensor. Pixels are rendered
// in parallel; each pixel owns a sampler seeded from the sensor's seed, its
// kind and position in the scene, and the pixel index, so results depend
// neither on scheduling nor on generated sensor ids. workers <= 0
// means runtime.NumCPU.
func Render(ctx context.Context, integrator Integrator, sc *scene.Scene, sn sensor.Sensor, workers int) (RenderStats, error) {
	start := time.Now()
	film := sn.Film()
	film.Clear()
	width, height := film.Size()
	cfg := sn.Sampler()
	key := seedKey(sc, sn)

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			x, y := x, y
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				seed := pixelSeed(cfg.Seed, key, y*width+x)
				sampler := core.NewIndependentSampler(rand.New(rand.NewSource(int64(seed))))
				for i := 0; i < cfg.SampleCount; i++ {
					film.AddSample(x, y, samplePixel(integrator, sc, sn, sampler, x, y, width, height))
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return RenderStats{}, fmt.Errorf("render sensor %s: %w", sn.ID(), err)
	}

	stats := RenderStats{
		SensorID:     sn.ID(),
		TotalPixels:  width * height,
		TotalSamples: width * height * cfg.SampleCount,
		Duration:     time.Since(start),
	}
	for _, row := range film.Values() {
		for _, v := range row {
			stats.MeanValue += v
		}
	}
	stats.MeanValue /= float64(stats.TotalPixels)

	logger.With("sensor", sn.ID()).Infof("rendered %dx%d at %d spp in %v, mean %g",
		width, height, cfg.SampleCount, stats.Duration, stats.MeanValue)
	return stats, nil
}

// samplePixel draws one sample for pixel (x, y). The position sample spans
// the film so multi-column films partition the sensor's footprint.
func samplePixel(integrator Integrator, sc *scene.Scene, sn sensor.Sensor, sampler core.Sampler, x, y, width, height int) core.Spectrum {
	wavelengthSample := sampler.Next1D()
	offset := sampler.Next2D()
	position := core.NewVec2(
		(float64(x)+offset.X)/float64(width),
		(float64(y)+offset.Y)/float64(height),
	)
	direction := sampler.Next2D()

	ray, weight := sn.SampleRay(0, wavelengthSample, position, direction, true)
	if weight.IsBlack() {
		return core.Spectrum{}
	}
	return weight.Mul(integrator.Li(ray, sc, sampler))
}

// seedKey identifies sn within sc by kind and index. Sensors not registered
// with the scene share index -1.
func seedKey(sc *scene.Scene, sn sensor.Sensor) string {
	index := -1
	for i, candidate := range sc.Sensors {
		if candidate == sn {
			index = i
			break
		}
	}
	return fmt.Sprintf("%s#%d", sn.Kind(), index)
}

func pixelSeed(seed uint64, key string, pixel int) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], seed)
	binary.LittleEndian.PutUint64(buf[8:], uint64(pixel))

	d := xxhash.New()
	_, _ = d.WriteString(key)
	_, _ = d.Write(buf[:])
	return d.Sum64()
}
