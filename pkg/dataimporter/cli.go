package dataimporter

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/normaliser/pkg/agency"
	"github.com/travigo/normaliser/pkg/database"
	"github.com/travigo/normaliser/pkg/elastic_client"
	"github.com/travigo/normaliser/pkg/redis_client"
	"github.com/travigo/normaliser/pkg/routecache"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "data-importer",
		Usage: "Download & normalise agency GTFS feeds",
		Subcommands: []*cli.Command{
			{
				Name:  "agency",
				Usage: "Import the feed of an agency",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "ID of the agency profile",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Path or URL of the GTFS bundle, defaults to the profile source",
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "Comma separated outputs (mongo, json, routecache, elastic)",
						Value: OutputMongo,
					},
					&cli.StringFlag{
						Name:  "json-dir",
						Usage: "Directory the json output is written to",
						Value: "output/",
					},
					&cli.StringFlag{
						Name:     "repeat-every",
						Usage:    "Repeat this import every X (eg. 24h)",
						Required: false,
					},
				},
				Action: func(c *cli.Context) error {
					registry, err := agency.LoadDefault()
					if err != nil {
						return err
					}

					outputs, err := ParseOutputs(c.String("output"))
					if err != nil {
						return err
					}

					importer := &Importer{
						Registry: registry,
					}

					for _, output := range outputs {
						switch output {
						case OutputMongo:
							if err := database.Connect(); err != nil {
								return err
							}
							defer database.Disconnect(c.Context)

							importer.Sinks = append(importer.Sinks, &MongoSink{})
						case OutputJSON:
							importer.Sinks = append(importer.Sinks, &JSONSink{Directory: c.String("json-dir")})
						case OutputRouteCache:
							if err := connectRedis(); err != nil {
								return err
							}

							importer.Sinks = append(importer.Sinks, &RouteCacheSink{
								Cache: routecache.New(redis_client.Client, routecache.DefaultExpiration),
							})
						case OutputElastic:
							if err := elastic_client.Connect(true); err != nil {
								return err
							}

							importer.Sinks = append(importer.Sinks, &StopIndexSink{})
						}
					}

					if redis_client.Configured() {
						if err := connectRedis(); err != nil {
							return err
						}

						importer.EventQueue, err = redis_client.QueueConnection.OpenQueue(EventsQueueName)
						if err != nil {
							return err
						}
					}

					repeatEvery := c.String("repeat-every")
					repeat := repeatEvery != ""
					var repeatDuration time.Duration
					if repeat {
						repeatDuration, err = time.ParseDuration(repeatEvery)
						if err != nil {
							return err
						}
					}

					for {
						startTime := time.Now()

						if _, err := importer.ImportAgency(c.Context, c.String("id"), c.String("source")); err != nil {
							return err
						}
						if !repeat {
							break
						}

						executionDuration := time.Since(startTime)
						log.Info().Msgf("Operation took %s", executionDuration.String())

						waitTime := repeatDuration - executionDuration

						if waitTime.Seconds() > 0 {
							select {
							case <-c.Context.Done():
								return c.Context.Err()
							case <-time.After(waitTime):
							}
						}
					}

					return nil
				},
			},
			{
				Name:  "list",
				Usage: "List the registered agency profiles",
				Action: func(c *cli.Context) error {
					registry, err := agency.LoadDefault()
					if err != nil {
						return err
					}

					for _, profile := range registry.List() {
						fmt.Fprintf(c.App.Writer, "%s\t%s\t%s\n", profile.Identifier, profile.Name, profile.Source)
					}

					return nil
				},
			},
		},
	}
}

func connectRedis() error {
	if redis_client.Client != nil {
		return nil
	}

	return redis_client.Connect()
}
