package middleware

import (
	"pulse360/config"
	"pulse360/internal/database"
	"pulse360/internal/events"
	"pulse360/internal/logger"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Middleware struct {
	db       database.DB
	eventBus *events.EventBus
	config   config.Config
	log      logger.Logger
}

func New(db database.DB, eventBus *events.EventBus, config config.Config) Middleware {
	return Middleware{
		db:       db,
		eventBus: eventBus,
		config:   config,
		log:      logger.New("middleware"),
	}
}

// Setup attaches the global middleware chain: panic recovery first, then
// CORS, then request logging.
func (m Middleware) Setup(router fiber.Router) {
	router.Use(recover.New())
	router.Use(cors.New())
	router.Use(m.RequestLogger())
}

func (m Middleware) RequestLogger() fiber.Handler {
	log := m.log.Function("RequestLogger")

	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		log.Info("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start).String())

		return err
	}
}
