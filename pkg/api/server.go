package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/normaliser/pkg/agency"
	"github.com/travigo/normaliser/pkg/api/routes"
	"github.com/travigo/normaliser/pkg/routecache"
)

func NewApp(registry *agency.Registry, routeCache *routecache.Cache) (*fiber.App, error) {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	if err := routes.AgenciesRouter(group.Group("/agencies"), registry, routeCache); err != nil {
		return nil, err
	}

	return webApp, nil
}

func SetupServer(listen string, registry *agency.Registry, routeCache *routecache.Cache) error {
	webApp, err := NewApp(registry, routeCache)
	if err != nil {
		return err
	}

	return webApp.Listen(listen)
}
