package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/normaliser/pkg/api"
	"github.com/travigo/normaliser/pkg/dataimporter"
	"github.com/travigo/normaliser/pkg/indexer"
	"github.com/travigo/normaliser/pkg/normaliser"
	"github.com/travigo/normaliser/pkg/util"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("NORMALISER_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if util.EnvironmentFlag("DEBUG") {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "normaliser",
		Description: "Normalises agency GTFS feeds into stable route, trip & stop identities",

		Commands: []*cli.Command{
			dataimporter.RegisterCLI(),
			normaliser.RegisterCLI(),
			indexer.RegisterCLI(),
			api.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
