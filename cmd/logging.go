package cmd

import (
	"github.com/urfave/cli"

	"github.com/df07/go-radiometer/pkg/log"
)

var logger = log.New("radiometer")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
