package types

// Config representa a configuração da aplicação, carregada de arquivo e/ou variáveis de ambiente.
type Config struct {
	API       APIConfig       `json:"api" yaml:"api" toml:"api"`
	Scheduled ScheduledConfig `json:"scheduled" yaml:"scheduled" toml:"scheduled"`
	Email     EmailConfig     `json:"email" yaml:"email" toml:"email"`
	SES       SESConfig       `json:"ses" yaml:"ses" toml:"ses"`
	Server    ServerConfig    `json:"server" yaml:"server" toml:"server"`
	Metrics   MetricsConfig   `json:"metrics" yaml:"metrics" toml:"metrics"`
}

// APIConfig holds the Cloudflare API credential and endpoint.
type APIConfig struct {
	Token   string `json:"token" yaml:"token" toml:"token"`
	BaseURL string `json:"base_url" yaml:"base_url" toml:"base_url"`
}

// ScheduledConfig describes the single designated account used by the cron run.
type ScheduledConfig struct {
	AccountID   string `json:"account_id" yaml:"account_id" toml:"account_id"`
	AccountName string `json:"account_name" yaml:"account_name" toml:"account_name"`
	// APIToken sobrescreve api.token apenas para a execução agendada.
	APIToken string `json:"api_token" yaml:"api_token" toml:"api_token"`
	Cron     string `json:"cron" yaml:"cron" toml:"cron"`
}

// EmailConfig holds sender, recipient and subject of the scheduled report email.
type EmailConfig struct {
	SenderName    string `json:"sender_name" yaml:"sender_name" toml:"sender_name"`
	SenderAddress string `json:"sender_address" yaml:"sender_address" toml:"sender_address"`
	Recipient     string `json:"recipient" yaml:"recipient" toml:"recipient"`
	Subject       string `json:"subject" yaml:"subject" toml:"subject"`
}

// SESConfig holds AWS SES v2 settings. Empty keys fall back to the default AWS credential chain.
type SESConfig struct {
	Region    string `json:"region" yaml:"region" toml:"region"`
	AccessKey string `json:"access_key" yaml:"access_key" toml:"access_key"`
	SecretKey string `json:"secret_key" yaml:"secret_key" toml:"secret_key"`
}

type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr" toml:"addr"`
}

type MetricsConfig struct {
	Addr string `json:"addr" yaml:"addr" toml:"addr"`
}

const (
	DefaultAPIBaseURL   = "https://api.cloudflare.com/client/v4"
	DefaultCron         = "0 8 * * *"
	DefaultServerAddr   = ":8787"
	DefaultMetricsAddr  = ":9090"
	DefaultEmailSubject = "Cloudflare Analytics Report"
	DefaultSESRegion    = "us-east-1"
)

// ApplyDefaults preenche os campos não informados com os valores padrão.
func (c *Config) ApplyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultAPIBaseURL
	}
	if c.Scheduled.Cron == "" {
		c.Scheduled.Cron = DefaultCron
	}
	if c.Scheduled.AccountName == "" {
		c.Scheduled.AccountName = c.Scheduled.AccountID
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = DefaultMetricsAddr
	}
	if c.Email.Subject == "" {
		c.Email.Subject = DefaultEmailSubject
	}
	if c.SES.Region == "" {
		c.SES.Region = DefaultSESRegion
	}
}

// ScheduledToken returns the credential used by the scheduled run.
func (c *Config) ScheduledToken() string {
	if c.Scheduled.APIToken != "" {
		return c.Scheduled.APIToken
	}
	return c.API.Token
}

// ValidateInteractive checks what the on-demand report needs.
func (c *Config) ValidateInteractive() error {
	if c.API.Token == "" {
		return ErrMissingAPIToken
	}
	return nil
}

// ValidateScheduled checks what the scheduled report needs, including email settings.
func (c *Config) ValidateScheduled() error {
	if c.ScheduledToken() == "" {
		return ErrMissingAPIToken
	}
	if c.Scheduled.AccountID == "" {
		return ErrMissingScheduledAccount
	}
	if c.Email.SenderAddress == "" || c.Email.Recipient == "" {
		return ErrMissingEmailConfig
	}
	return nil
}
