package template

import (
	"github.com/prompthub/api/internal/template/repository"
	"github.com/prompthub/api/internal/template/service"
	"go.uber.org/fx"
)

var Module = fx.Module("template.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
