package main

import (
	"fmt"
	"os"

	"github.com/diillson/cf-analytics-report/internal/adapter/driven/cloudflare"
	"github.com/diillson/cf-analytics-report/internal/adapter/driven/config"
	"github.com/diillson/cf-analytics-report/internal/adapter/driven/export"
	"github.com/diillson/cf-analytics-report/internal/adapter/driven/mail"
	"github.com/diillson/cf-analytics-report/internal/adapter/driving/cli"
	"github.com/diillson/cf-analytics-report/pkg/console"
	"github.com/diillson/cf-analytics-report/pkg/metrics"
	"github.com/diillson/cf-analytics-report/pkg/version"
)

func main() {
	// Inicializa os repositórios
	deps := cli.Dependencies{
		ConfigRepo:       config.NewConfigRepository(),
		ExportRepo:       export.NewExportRepository(),
		Console:          console.NewConsole(),
		Metrics:          metrics.New(),
		NewAnalyticsRepo: cloudflare.NewCloudflareRepository,
		NewMailRepo:      mail.NewSESRepository,
	}

	app := cli.NewCLIApp(version.Version, deps)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
