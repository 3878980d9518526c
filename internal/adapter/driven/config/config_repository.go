package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/cf-analytics-report/internal/domain/repository"
	"github.com/diillson/cf-analytics-report/internal/shared/types"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// DefaultEnvFile é o arquivo .env lido antes das variáveis de ambiente.
const DefaultEnvFile = ".env"

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct {
	envFile string
}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{envFile: DefaultEnvFile}
}

// NewConfigRepositoryWithEnvFile usa um arquivo .env alternativo ("" desativa).
func NewConfigRepositoryWithEnvFile(envFile string) repository.ConfigRepository {
	return &ConfigRepositoryImpl{envFile: envFile}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	return &config, nil
}

// ApplyEnv carrega o .env (se existir) e sobrescreve cfg com as variáveis de ambiente presentes.
// Variáveis já definidas no ambiente têm precedência sobre o .env.
func (r *ConfigRepositoryImpl) ApplyEnv(cfg *types.Config) error {
	if r.envFile != "" {
		if err := godotenv.Load(r.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error loading %s: %w", r.envFile, err)
		}
	}

	overrides := []struct {
		name   string
		target *string
	}{
		{"CF_API_TOKEN", &cfg.API.Token},
		{"CF_API_BASE_URL", &cfg.API.BaseURL},
		{"CF_ACCOUNT_ID", &cfg.Scheduled.AccountID},
		{"CF_ACCOUNT_NAME", &cfg.Scheduled.AccountName},
		{"REPORT_CRON", &cfg.Scheduled.Cron},
		{"SENDER_NAME", &cfg.Email.SenderName},
		{"SENDER_EMAIL", &cfg.Email.SenderAddress},
		{"RECIPIENT_EMAIL", &cfg.Email.Recipient},
		{"EMAIL_SUBJECT", &cfg.Email.Subject},
		{"AWS_SES_REGION", &cfg.SES.Region},
		{"AWS_SES_ACCESS_KEY", &cfg.SES.AccessKey},
		{"AWS_SES_SECRET_KEY", &cfg.SES.SecretKey},
		{"SERVER_ADDR", &cfg.Server.Addr},
		{"METRICS_ADDR", &cfg.Metrics.Addr},
	}

	for _, o := range overrides {
		if v := os.Getenv(o.name); v != "" {
			*o.target = v
		}
	}
	return nil
}

// Load monta a configuração final: arquivo opcional, depois .env/ambiente, depois defaults.
func Load(repo repository.ConfigRepository, filePath string) (*types.Config, error) {
	cfg := &types.Config{}
	if filePath != "" {
		loaded, err := repo.LoadConfigFile(filePath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := repo.ApplyEnv(cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return cfg, nil
}
