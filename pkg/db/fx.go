package db

import (
	"github.com/smallbiznis/facturo/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func NewManagerFromConfig(cfg config.Config, log *zap.Logger) *Manager {
	return NewManager(cfg.DatabasePath, log)
}

var Module = fx.Module("db",
	fx.Provide(NewManagerFromConfig),
)
