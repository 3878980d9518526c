package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/cf-analytics-report/internal/shared/types"
)

var envNames = []string{
	"CF_API_TOKEN", "CF_API_BASE_URL", "CF_ACCOUNT_ID", "CF_ACCOUNT_NAME", "REPORT_CRON",
	"SENDER_NAME", "SENDER_EMAIL", "RECIPIENT_EMAIL", "EMAIL_SUBJECT",
	"AWS_SES_REGION", "AWS_SES_ACCESS_KEY", "AWS_SES_SECRET_KEY", "SERVER_ADDR", "METRICS_ADDR",
}

// clearEnv garante que variáveis do ambiente de CI não vazem para os testes.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range envNames {
		t.Setenv(name, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigFileFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "config.toml",
			content: `
[api]
token = "tok"

[scheduled]
account_id = "acc-1"
account_name = "Acme"

[email]
recipient = "ops@example.com"
`,
		},
		{
			name: "yaml",
			file: "config.yml",
			content: `
api:
  token: tok
scheduled:
  account_id: acc-1
  account_name: Acme
email:
  recipient: ops@example.com
`,
		},
		{
			name:    "json",
			file:    "config.json",
			content: `{"api":{"token":"tok"},"scheduled":{"account_id":"acc-1","account_name":"Acme"},"email":{"recipient":"ops@example.com"}}`,
		},
	}

	repo := NewConfigRepositoryWithEnvFile("")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := repo.LoadConfigFile(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, "tok", cfg.API.Token)
			assert.Equal(t, "acc-1", cfg.Scheduled.AccountID)
			assert.Equal(t, "Acme", cfg.Scheduled.AccountName)
			assert.Equal(t, "ops@example.com", cfg.Email.Recipient)
		})
	}
}

func TestLoadConfigFileErrors(t *testing.T) {
	repo := NewConfigRepositoryWithEnvFile("")

	_, err := repo.LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = repo.LoadConfigFile(t.TempDir())
	assert.ErrorContains(t, err, "is a directory")

	_, err = repo.LoadConfigFile(writeFile(t, "config.ini", "x=1"))
	assert.ErrorContains(t, err, "unsupported config file format")

	_, err = repo.LoadConfigFile(writeFile(t, "config.json", "{not json"))
	assert.ErrorContains(t, err, "error parsing JSON file")
}

func TestApplyEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("CF_API_TOKEN", "env-token")
	t.Setenv("CF_ACCOUNT_ID", "env-acc")
	t.Setenv("RECIPIENT_EMAIL", "env@example.com")
	t.Setenv("AWS_SES_REGION", "sa-east-1")

	cfg := &types.Config{API: types.APIConfig{Token: "file-token", BaseURL: "https://file"}}
	require.NoError(t, NewConfigRepositoryWithEnvFile("").ApplyEnv(cfg))

	assert.Equal(t, "env-token", cfg.API.Token)
	assert.Equal(t, "https://file", cfg.API.BaseURL)
	assert.Equal(t, "env-acc", cfg.Scheduled.AccountID)
	assert.Equal(t, "env@example.com", cfg.Email.Recipient)
	assert.Equal(t, "sa-east-1", cfg.SES.Region)
}

func TestApplyEnvReadsDotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv não sobrescreve variáveis já definidas; remover garante que o .env seja lido.
	for _, name := range []string{"CF_API_TOKEN", "SENDER_EMAIL"} {
		require.NoError(t, os.Unsetenv(name))
	}
	t.Cleanup(func() {
		os.Unsetenv("CF_API_TOKEN")
		os.Unsetenv("SENDER_EMAIL")
	})

	envFile := writeFile(t, ".env", "CF_API_TOKEN=dotenv-token\nSENDER_EMAIL=reports@example.com\n")

	cfg := &types.Config{}
	require.NoError(t, NewConfigRepositoryWithEnvFile(envFile).ApplyEnv(cfg))
	assert.Equal(t, "dotenv-token", cfg.API.Token)
	assert.Equal(t, "reports@example.com", cfg.Email.SenderAddress)
}

func TestApplyEnvMissingDotEnvIsIgnored(t *testing.T) {
	clearEnv(t)
	cfg := &types.Config{}
	err := NewConfigRepositoryWithEnvFile(filepath.Join(t.TempDir(), ".env")).ApplyEnv(cfg)
	assert.NoError(t, err)
}

func TestLoadAppliesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("CF_ACCOUNT_ID", "acc-9")

	cfg, err := Load(NewConfigRepositoryWithEnvFile(""), "")
	require.NoError(t, err)

	assert.Equal(t, types.DefaultAPIBaseURL, cfg.API.BaseURL)
	assert.Equal(t, types.DefaultCron, cfg.Scheduled.Cron)
	assert.Equal(t, "acc-9", cfg.Scheduled.AccountName)
	assert.Equal(t, types.DefaultServerAddr, cfg.Server.Addr)
	assert.Equal(t, types.DefaultMetricsAddr, cfg.Metrics.Addr)
	assert.Equal(t, types.DefaultEmailSubject, cfg.Email.Subject)
	assert.Equal(t, types.DefaultSESRegion, cfg.SES.Region)
}

func TestLoadEnvBeatsFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("REPORT_CRON", "30 6 * * *")

	path := writeFile(t, "config.yaml", "scheduled:\n  cron: \"0 1 * * *\"\n  account_id: acc-1\n")
	cfg, err := Load(NewConfigRepositoryWithEnvFile(""), path)
	require.NoError(t, err)
	assert.Equal(t, "30 6 * * *", cfg.Scheduled.Cron)
	assert.Equal(t, "acc-1", cfg.Scheduled.AccountID)
}
