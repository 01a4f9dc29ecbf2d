package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-radiometer/pkg/integrator"
	"github.com/df07/go-radiometer/pkg/loaders"
	"github.com/df07/go-radiometer/pkg/sensor"
)

// Render every sensor of a scene and print a summary table.
func Render(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	sf, err := loaders.LoadSceneFile(ctx.Args().First())
	if err != nil {
		return err
	}
	if err := sf.Scene.Preprocess(); err != nil {
		return err
	}

	sensors := sf.Scene.Sensors
	if id := ctx.String("sensor"); id != "" {
		sn, ok := sf.Scene.Sensor(id)
		if !ok {
			return fmt.Errorf("no sensor with id %q", id)
		}
		sensors = []sensor.Sensor{sn}
	}

	outDir := ctx.String("out")
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	var allStats []integrator.RenderStats
	for _, sn := range sensors {
		stats, err := integrator.Render(context.Background(), sf.Integrator, sf.Scene, sn, ctx.Int("workers"))
		if err != nil {
			return err
		}
		allStats = append(allStats, stats)

		if outDir != "" {
			if err := saveFilm(sn, filepath.Join(outDir, sn.ID()+".png"), ctx.Float64("exposure")); err != nil {
				return err
			}
		}
	}

	fmt.Fprint(ctx.App.Writer, renderTable(sensors, allStats))
	return nil
}

func saveFilm(sn sensor.Sensor, filename string, exposure float64) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, sn.Film().Image(exposure, 2.2)); err != nil {
		return fmt.Errorf("error saving PNG: %w", err)
	}
	logger.Infof("film of sensor %s saved to %s", sn.ID(), filename)
	return nil
}

func renderTable(sensors []sensor.Sensor, stats []integrator.RenderStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Sensor", "Kind", "Film", "spp", "Mean value", "Render time"})

	var samples int
	for i, sn := range sensors {
		w, h := sn.Film().Size()
		table.Append([]string{
			sn.ID(),
			sn.Kind().String(),
			fmt.Sprintf("%dx%d", w, h),
			fmt.Sprintf("%d", sn.Sampler().SampleCount),
			fmt.Sprintf("%.6g", stats[i].MeanValue),
			stats[i].Duration.String(),
		})
		samples += stats[i].TotalSamples
	}
	table.SetFooter([]string{"", "", "", "", "TOTAL SAMPLES", fmt.Sprintf("%d", samples)})

	table.Render()
	return buf.String()
}
