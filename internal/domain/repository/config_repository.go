package repository

import (
	"github.com/diillson/cf-analytics-report/internal/shared/types"
)

// ConfigRepository defines the interface for loading configuration.
type ConfigRepository interface {
	LoadConfigFile(filePath string) (*types.Config, error)
	ApplyEnv(cfg *types.Config) error
}
