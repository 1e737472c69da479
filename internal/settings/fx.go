package settings

import (
	"github.com/smallbiznis/facturo/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func NewFromConfig(cfg config.Config, log *zap.Logger) (*Store, error) {
	return NewStore(cfg.SettingsPath, log)
}

var Module = fx.Module("settings",
	fx.Provide(NewFromConfig),
)
