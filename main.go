package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-radiometer/cmd"
)

func main() {
	app := cli.NewApp()
	app.Name = "go-radiometer"
	app.Usage = "measure radiance and irradiance in simple scenes"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render every sensor of a scene",
			Description: `
Load a YAML scene description, render each sensor's film with the path
integrator and print a summary of the measured values.`,
			ArgsUsage: "scene.yaml",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Usage: "directory that receives one PNG per sensor film",
				},
				cli.StringFlag{
					Name:  "sensor",
					Usage: "render only the sensor with this id",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "parallel pixel workers (0 = number of CPUs)",
				},
				cli.Float64Flag{
					Name:  "exposure",
					Value: 1.0,
					Usage: "exposure used when tone-mapping saved films",
				},
			},
			Action: cmd.Render,
		},
		{
			Name:      "inspect",
			Usage:     "print the resolved transform and a sample ray of every sensor",
			ArgsUsage: "scene.yaml",
			Action:    cmd.Inspect,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
