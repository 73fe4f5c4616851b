package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/rs/zerolog/log"
	"github.com/travigo/normaliser/pkg/agency"
	"github.com/travigo/normaliser/pkg/gtfs"
	"github.com/travigo/normaliser/pkg/normaliser"
	"github.com/travigo/normaliser/pkg/routecache"
)

type agenciesHandler struct {
	registry   *agency.Registry
	engines    map[string]*normaliser.Normaliser
	routeCache *routecache.Cache
}

// AgenciesRouter exposes route identity and headsign classification for every
// registered agency. routeCache may be nil.
func AgenciesRouter(router fiber.Router, registry *agency.Registry, routeCache *routecache.Cache) error {
	handler := &agenciesHandler{
		registry:   registry,
		engines:    map[string]*normaliser.Normaliser{},
		routeCache: routeCache,
	}

	for _, profile := range registry.List() {
		engine, err := normaliser.New(profile, nil)
		if err != nil {
			return err
		}

		handler.engines[profile.Identifier] = engine
	}

	router.Get("/", handler.listAgencies)
	router.Get("/:agency/routes/:shortname", handler.getRoute)
	router.Get("/:agency/headsigns", handler.classifyHeadsign)

	return nil
}

func (h *agenciesHandler) listAgencies(c *fiber.Ctx) error {
	agencies := []fiber.Map{}

	for _, profile := range h.registry.List() {
		agencies = append(agencies, fiber.Map{
			"Identifier":    profile.Identifier,
			"Name":          profile.Name,
			"Provider":      profile.Provider,
			"Locale":        profile.Locale,
			"TransportType": profile.TransportType,
			"Colour":        profile.Colour,
		})
	}

	return c.JSON(agencies)
}

func (h *agenciesHandler) engine(c *fiber.Ctx) (*normaliser.Normaliser, error) {
	identifier := c.Params("agency")

	engine, exists := h.engines[identifier]
	if !exists {
		c.Status(fiber.StatusNotFound)
		return nil, c.JSON(fiber.Map{
			"error": "Could not find Agency matching Agency Identifier",
		})
	}

	return engine, nil
}

func (h *agenciesHandler) getRoute(c *fiber.Ctx) error {
	engine, err := h.engine(c)
	if engine == nil {
		return err
	}

	shortName := c.Params("shortname")
	agencyRef := engine.Profile().Identifier

	if h.routeCache != nil {
		route, err := h.routeCache.Get(c.Context(), agencyRef, engine.DisplayShortName(shortName))
		if err == nil {
			return reduced(c, route)
		}
		if !errors.Is(err, routecache.ErrNotFound) {
			log.Error().Err(err).Str("agency", agencyRef).Msg("Failed to read route cache")
		}
	}

	route, err := engine.Route(&gtfs.Route{ID: shortName, ShortName: shortName})
	if err != nil {
		return unprocessable(c, err)
	}

	return reduced(c, route)
}

func (h *agenciesHandler) classifyHeadsign(c *fiber.Ctx) error {
	engine, err := h.engine(c)
	if engine == nil {
		return err
	}

	headsign := c.Query("headsign")
	if headsign == "" {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "A headsign must be given",
		})
	}

	direction, cleaned, err := engine.Headsign(headsign)
	if err != nil {
		return unprocessable(c, err)
	}

	return c.JSON(fiber.Map{
		"Direction":     direction,
		"DirectionName": direction.String(),
		"Headsign":      cleaned,
	})
}

func reduced(c *fiber.Ctx, value interface{}) error {
	valueReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic", "detailed"},
	}, value)
	if err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce record",
		})
	}

	return c.JSON(valueReduced)
}

func unprocessable(c *fiber.Ctx, err error) error {
	c.Status(fiber.StatusUnprocessableEntity)
	return c.JSON(fiber.Map{
		"error": err.Error(),
	})
}
