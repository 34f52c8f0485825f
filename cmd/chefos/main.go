package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/sajithvengateri-svg/chefos/internal/clock"
	"github.com/sajithvengateri-svg/chefos/internal/config"
	"github.com/sajithvengateri-svg/chefos/internal/costing"
	"github.com/sajithvengateri-svg/chefos/internal/ingredient"
	"github.com/sajithvengateri-svg/chefos/internal/margin"
	"github.com/sajithvengateri-svg/chefos/internal/migration"
	"github.com/sajithvengateri-svg/chefos/internal/ordering"
	"github.com/sajithvengateri-svg/chefos/internal/production"
	"github.com/sajithvengateri-svg/chefos/internal/recipe"
	"github.com/sajithvengateri-svg/chefos/internal/scaling"
	"github.com/sajithvengateri-svg/chefos/internal/scheduler"
	"github.com/sajithvengateri-svg/chefos/internal/server"
	"github.com/sajithvengateri-svg/chefos/internal/yield"
	"github.com/sajithvengateri-svg/chefos/pkg/db"
	"github.com/sajithvengateri-svg/chefos/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// Domain contexts
		ingredient.Module,
		recipe.Module,
		costing.Module,
		margin.Module,
		scaling.Module,
		yield.Module,
		production.Module,
		ordering.Module,

		// Surfaces
		server.Module,
		scheduler.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
