package main

import (
	"github.com/boxofficehq/boxoffice/internal/config"
	"github.com/boxofficehq/boxoffice/internal/migration"
	"github.com/boxofficehq/boxoffice/internal/observability"
	"github.com/boxofficehq/boxoffice/internal/server"
	"github.com/boxofficehq/boxoffice/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}
