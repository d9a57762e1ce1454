package ranking

import (
	"github.com/prompthub/api/internal/ranking/repository"
	"github.com/prompthub/api/internal/ranking/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ranking.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
