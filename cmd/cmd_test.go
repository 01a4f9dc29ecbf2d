package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

func newTestApp(out *bytes.Buffer) *cli.App {
	app := cli.NewApp()
	app.Writer = out
	app.Flags = []cli.Flag{cli.BoolFlag{Name: "v"}, cli.BoolFlag{Name: "vv"}}
	app.Commands = []cli.Command{
		{
			Name:   "render",
			Action: Render,
			Flags: []cli.Flag{
				cli.StringFlag{Name: "out, o"},
				cli.StringFlag{Name: "sensor"},
				cli.IntFlag{Name: "workers", Value: 2},
				cli.Float64Flag{Name: "exposure", Value: 1},
			},
		},
		{Name: "inspect", Action: Inspect},
	}
	return app
}

func TestRenderCommand(t *testing.T) {
	var out bytes.Buffer
	dir := t.TempDir()

	err := newTestApp(&out).Run([]string{"radiometer", "render", "--out", dir, "testdata/meters.yaml"})
	require.NoError(t, err)

	table := out.String()
	assert.Contains(t, table, "flux")
	assert.Contains(t, table, "irradiancemeter")
	assert.Contains(t, table, "3.14159")
	assert.Contains(t, table, "beam")
	assert.Contains(t, table, "TOTAL SAMPLES")

	for _, name := range []string{"flux.png", "beam.png"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestRenderSingleSensor(t *testing.T) {
	var out bytes.Buffer
	err := newTestApp(&out).Run([]string{"radiometer", "render", "--sensor", "beam", "testdata/meters.yaml"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "beam")
	assert.NotContains(t, out.String(), "flux")

	err = newTestApp(&out).Run([]string{"radiometer", "render", "--sensor", "nope", "testdata/meters.yaml"})
	assert.Error(t, err)
}

func TestInspectCommand(t *testing.T) {
	var out bytes.Buffer
	err := newTestApp(&out).Run([]string{"radiometer", "inspect", "testdata/meters.yaml"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "radiancemeter")
	assert.Contains(t, out.String(), "(0, 0, 3)")
}

func TestMissingSceneArgument(t *testing.T) {
	var out bytes.Buffer
	err := newTestApp(&out).Run([]string{"radiometer", "inspect"})
	assert.EqualError(t, err, "missing scene file argument")
}
