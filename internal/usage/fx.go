package usage

import (
	"github.com/prompthub/api/internal/usage/repository"
	"github.com/prompthub/api/internal/usage/service"
	"go.uber.org/fx"
)

var Module = fx.Module("usage.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
