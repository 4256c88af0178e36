package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/Fepozopo/glitchlab/pkg/cli"
	"github.com/Fepozopo/glitchlab/pkg/parallel"
)

func main() {
	if err := cli.LoadDotEnv(); err != nil {
		slog.Warn("could not load .env", "error", err)
	}

	var c cli.CLI
	ctx := kong.Parse(&c,
		kong.Name("glitchlab"),
		kong.Description("Reproduce classic graphics programming bugs on your own images."),
		kong.UsageOnError(),
		kong.Vars{"version": cli.Version},
	)

	logger := cli.SetupLogging(os.Stderr, c.LogLevel)

	pool := parallel.Start(c.Workers)
	logger.Debug("running", "command", ctx.Command(), "workers", pool.Workers())

	err := ctx.Run(&c.Globals, pool.Do, pool.Wait)
	pool.Wait(true)
	ctx.FatalIfErrorf(err)
}
