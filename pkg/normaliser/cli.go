package normaliser

import (
	"github.com/kr/pretty"
	"github.com/travigo/normaliser/pkg/agency"
	"github.com/travigo/normaliser/pkg/gtfs"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	agencyFlag := &cli.StringFlag{
		Name:     "id",
		Usage:    "agency profile identifier",
		Required: true,
	}

	return &cli.Command{
		Name:  "inspect",
		Usage: "Run single values through the normaliser of an agency",
		Subcommands: []*cli.Command{
			{
				Name:  "route",
				Usage: "resolve the identity of a route short name",
				Flags: []cli.Flag{
					agencyFlag,
					&cli.StringFlag{Name: "short-name", Required: true},
					&cli.StringFlag{Name: "long-name"},
					&cli.StringFlag{Name: "description"},
				},
				Action: func(c *cli.Context) error {
					engine, err := loadEngine(c.String("id"))
					if err != nil {
						return err
					}

					route, err := engine.Route(&gtfs.Route{
						ID:          c.String("short-name"),
						ShortName:   c.String("short-name"),
						LongName:    c.String("long-name"),
						Description: c.String("description"),
					})
					if err != nil {
						return err
					}

					pretty.Fprintf(c.App.Writer, "%# v\n", route)

					return nil
				},
			},
			{
				Name:  "headsign",
				Usage: "classify a trip headsign",
				Flags: []cli.Flag{
					agencyFlag,
					&cli.StringFlag{Name: "headsign", Required: true},
				},
				Action: func(c *cli.Context) error {
					engine, err := loadEngine(c.String("id"))
					if err != nil {
						return err
					}

					direction, headsign, err := engine.Headsign(c.String("headsign"))
					if err != nil {
						return err
					}

					pretty.Fprintf(c.App.Writer, "%v %# v\n", direction, headsign)

					return nil
				},
			},
			{
				Name:  "stop",
				Usage: "clean a stop name",
				Flags: []cli.Flag{
					agencyFlag,
					&cli.StringFlag{Name: "stop-id", Required: true},
					&cli.StringFlag{Name: "code"},
					&cli.StringFlag{Name: "name", Required: true},
				},
				Action: func(c *cli.Context) error {
					engine, err := loadEngine(c.String("id"))
					if err != nil {
						return err
					}

					stop, err := engine.Stop(&gtfs.Stop{
						ID:   c.String("stop-id"),
						Code: c.String("code"),
						Name: c.String("name"),
					})
					if err != nil {
						return err
					}

					pretty.Fprintf(c.App.Writer, "%# v\n", stop)

					return nil
				},
			},
		},
	}
}

func loadEngine(identifier string) (*Normaliser, error) {
	registry, err := agency.LoadDefault()
	if err != nil {
		return nil, err
	}

	profile, err := registry.Get(identifier)
	if err != nil {
		return nil, err
	}

	return New(profile, nil)
}
