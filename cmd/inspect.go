package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-radiometer/pkg/core"
	"github.com/df07/go-radiometer/pkg/loaders"
)

// Inspect prints the resolved world transform and a sample ray of every sensor.
func Inspect(ctx *cli.Context) error {
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

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Sensor", "Kind", "To world", "Ray origin", "Ray direction", "Weight"})

	center := core.NewVec2(0.5, 0.5)
	for _, sn := range sf.Scene.Sensors {
		ray, weight := sn.SampleRay(0, 0.5, center, center, true)
		table.Append([]string{
			sn.ID(),
			sn.Kind().String(),
			formatRows(sn.WorldTransform().Eval(0).Rows()),
			formatVec(ray.Origin),
			formatVec(ray.Direction),
			fmt.Sprintf("%.4g", weight.Average()),
		})
	}

	table.Render()
	fmt.Fprint(ctx.App.Writer, buf.String())
	return nil
}

func formatVec(v core.Vec3) string {
	return fmt.Sprintf("(%.4g, %.4g, %.4g)", v.X, v.Y, v.Z)
}

func formatRows(rows [4][4]float64) string {
	s := ""
	for i, row := range rows[:3] {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("[%.3g %.3g %.3g %.3g]", row[0], row[1], row[2], row[3])
	}
	return s
}
