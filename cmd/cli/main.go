package main

import (
	"context"
	"log"
	"os"

	"github.com/gaetanosm/lifetrack/internal/buildinfo"
	"github.com/gaetanosm/lifetrack/internal/client/cli"
	"github.com/gaetanosm/lifetrack/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}

}
