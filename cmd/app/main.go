package main

import (
	"go.uber.org/fx"

	"github.com/Rogue-Bear-Innovations/flashcards/internal/client"
	"github.com/Rogue-Bear-Innovations/flashcards/internal/config"
	"github.com/Rogue-Bear-Innovations/flashcards/internal/db"
	"github.com/Rogue-Bear-Innovations/flashcards/internal/logger"
	"github.com/Rogue-Bear-Innovations/flashcards/internal/proto"
	"github.com/Rogue-Bear-Innovations/flashcards/internal/service"
	"github.com/Rogue-Bear-Innovations/flashcards/internal/transport"
	"github.com/Rogue-Bear-Innovations/flashcards/internal/ui"
)

func main() {
	fx.New(
		fx.Provide(
			config.NewConfig,
			logger.NewLogger,
			db.NewGormClient,
			service.NewStudyTools,
			client.New,
			// pages reach the store through the JSON API, never directly
			func(c *client.Client) ui.API { return c },
			transport.NewHTTPServer,
		),
		proto.Module,
		fx.Invoke(func(*transport.HTTPServer) {}),
	).Run()
}
