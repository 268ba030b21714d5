package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pulse360/internal/app"
	"pulse360/internal/handlers"
	"pulse360/internal/logger"

	"github.com/gofiber/fiber/v2"
)

func main() {
	log := logger.New("main")

	application, err := app.New()
	if err != nil {
		log.Er("failed to initialize application", err)
		os.Exit(1)
	}

	fiberApp := fiber.New(fiber.Config{
		AppName:   "pulse360",
		BodyLimit: 50 * 1024 * 1024, // roster uploads
	})

	application.Middleware.Setup(fiberApp)

	if err := handlers.Router(fiberApp, application); err != nil {
		log.Er("failed to register routes", err)
		os.Exit(1)
	}

	go func() {
		addr := fmt.Sprintf(":%d", application.Config.ServerPort)
		log.Info("server listening", "addr", addr)
		if err := fiberApp.Listen(addr); err != nil {
			log.Er("server stopped", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if err := fiberApp.Shutdown(); err != nil {
		log.Er("failed to shut down server", err)
	}
	if err := application.Close(); err != nil {
		log.Er("failed to close application", err)
	}
}
