package main

import (
	"go.uber.org/fx"

	"github.com/billcraft/printgen/internal/config"
	"github.com/billcraft/printgen/internal/db"
	"github.com/billcraft/printgen/internal/observability/logger"
	"github.com/billcraft/printgen/internal/server"
	"github.com/billcraft/printgen/internal/templatestore"
)

func main() {
	fx.New(
		config.Module,
		logger.Module,
		db.Module,
		templatestore.Module,
		server.Module,
	).Run()
}
