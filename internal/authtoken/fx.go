package authtoken

import (
	"github.com/prompthub/api/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("authtoken",
	fx.Provide(func(cfg config.Config) *Verifier {
		return NewVerifier(cfg.AuthJWTSecret)
	}),
)
