package indexer

import (
	"github.com/travigo/normaliser/pkg/database"
	"github.com/travigo/normaliser/pkg/elastic_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "indexer",
		Usage: "Indexes normalised data into Elasticsearch",
		Subcommands: []*cli.Command{
			{
				Name:  "stops",
				Usage: "re-index the stops of an agency from the database",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "agency profile identifier",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					defer database.Disconnect(c.Context)

					if err := elastic_client.Connect(true); err != nil {
						return err
					}

					return IndexStopsFromMongo(c.Context, c.String("id"))
				},
			},
		},
	}
}
