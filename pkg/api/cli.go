package api

import (
	"github.com/travigo/normaliser/pkg/agency"
	"github.com/travigo/normaliser/pkg/redis_client"
	"github.com/travigo/normaliser/pkg/routecache"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the route identity & headsign web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					registry, err := agency.LoadDefault()
					if err != nil {
						return err
					}

					var routeCache *routecache.Cache
					if redis_client.Configured() {
						if err := redis_client.Connect(); err != nil {
							return err
						}

						routeCache = routecache.New(redis_client.Client, routecache.DefaultExpiration)
					}

					return SetupServer(c.String("listen"), registry, routeCache)
				},
			},
		},
	}
}
