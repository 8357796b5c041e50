package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/dheerajchand/colour/internal/commands"
	"github.com/dheerajchand/colour/internal/logging"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("colour"),
		kong.Description("Colour rendering and colour quality bar charts for light sources."),
		kong.UsageOnError(),
	)

	level, err := logging.ParseLevel(cli.LogLevel)
	ctx.FatalIfErrorf(err)
	logging.Init(level, cli.LogFormat)

	background, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = ctx.Run(&commands.Context{
		Ctx:     background,
		Timeout: cli.Timeout,
		Stdout:  os.Stdout,
	})
	ctx.FatalIfErrorf(err)
}
