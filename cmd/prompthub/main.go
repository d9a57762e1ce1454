package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/prompthub/api/internal/clock"
	"github.com/prompthub/api/internal/config"
	"github.com/prompthub/api/internal/migration"
	"github.com/prompthub/api/internal/observability"
	"github.com/prompthub/api/internal/server"
	"github.com/prompthub/api/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
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
