package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/diillson/cf-analytics-report/internal/adapter/driven/config"
	"github.com/diillson/cf-analytics-report/internal/adapter/driven/mail"
	"github.com/diillson/cf-analytics-report/internal/adapter/driving/httpapi"
	"github.com/diillson/cf-analytics-report/internal/adapter/driving/scheduler"
	"github.com/diillson/cf-analytics-report/internal/application/usecase"
	"github.com/diillson/cf-analytics-report/internal/domain/repository"
	"github.com/diillson/cf-analytics-report/internal/shared/types"
	"github.com/diillson/cf-analytics-report/pkg/console"
	"github.com/diillson/cf-analytics-report/pkg/metrics"
	"github.com/diillson/cf-analytics-report/pkg/version"
)

const shutdownTimeout = 30 * time.Second

// Dependencies são os adapters usados pelos comandos. Os repositórios que dependem
// da configuração carregada (token, região SES) são criados por fábricas.
type Dependencies struct {
	ConfigRepo       repository.ConfigRepository
	ExportRepo       repository.ExportRepository
	Console          types.ConsoleInterface
	Metrics          *metrics.Metrics
	NewAnalyticsRepo func(baseURL, token string) repository.AnalyticsRepository
	NewMailRepo      func(ctx context.Context, cfg types.SESConfig, console types.ConsoleInterface) (repository.MailRepository, error)
	Clock            usecase.Clock
}

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd *cobra.Command
	deps    Dependencies
	version string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string, deps Dependencies) *CLIApp {
	app := &CLIApp{
		version: versionStr,
		deps:    deps,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:           "cf-analytics",
		Short:         "Cloudflare Analytics Report CLI",
		Long:          "Daily Cloudflare traffic report for your accounts and zones, on demand, over HTTP, or by email on a schedule.",
		Version:       formattedVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          app.runReport,
	}

	rootCmd.SetVersionTemplate(`{{printf "Cloudflare Analytics Report version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress banner and log output (the report itself is still printed)")
	addReportFlags(rootCmd)

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Print yesterday's report for every accessible account",
		RunE:  app.runReport,
	}
	addReportFlags(reportCmd)

	sendCmd := &cobra.Command{
		Use:   "send",
		Short: "Build the scheduled account report and email it once",
		RunE:  app.runSend,
	}
	sendCmd.Flags().Bool("dry-run", false, "Print the email instead of sending it through SES")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the report over HTTP and email it on the configured cron schedule",
		RunE:  app.runServe,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Cloudflare Analytics Report version: %s\n", version.FormatVersion())
			if check, _ := cmd.Flags().GetBool("check"); check {
				version.CheckLatestVersion(cmd.Context(), app.version, app.deps.Console)
			}
		},
	}
	versionCmd.Flags().Bool("check", false, "Check GitHub for a newer release")

	rootCmd.AddCommand(reportCmd, sendCmd, serveCmd, versionCmd)

	app.rootCmd = rootCmd
	return app
}

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("account", "a", nil, "Only report these account IDs (comma-separated)")
	cmd.Flags().Bool("chart", false, "Display a bar chart of requests per zone for each account")
	cmd.Flags().StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	cmd.Flags().StringSliceP("report-type", "y", []string{"txt"}, "Specify report types: txt, csv, json, pdf")
	cmd.Flags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// Command exposes the root command (flags, output and args can be set in tests).
func (app *CLIApp) Command() *cobra.Command {
	return app.rootCmd
}

// parseArgs lê as flags do comando em execução para um CLIArgs.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	configFile, _ := cmd.Flags().GetString("config-file")
	quiet, _ := cmd.Flags().GetBool("quiet")
	accounts, _ := cmd.Flags().GetStringSlice("account")
	chart, _ := cmd.Flags().GetBool("chart")
	reportName, _ := cmd.Flags().GetString("report-name")
	reportType, _ := cmd.Flags().GetStringSlice("report-type")
	dir, _ := cmd.Flags().GetString("dir")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = cwd
	} else {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	return &types.CLIArgs{
		ConfigFile: configFile,
		Accounts:   accounts,
		ReportName: reportName,
		ReportType: reportType,
		Dir:        dir,
		Chart:      chart,
		DryRun:     dryRun,
		Quiet:      quiet,
	}, nil
}

// prepare lê as flags, escolhe o console e carrega a configuração.
func (app *CLIApp) prepare(cmd *cobra.Command) (*types.CLIArgs, *types.Config, types.ConsoleInterface, error) {
	cliArgs, err := app.parseArgs(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	out := app.deps.Console
	if cliArgs.Quiet {
		out = console.NewRecorder()
	} else {
		displayWelcomeBanner(cmd.OutOrStdout())
	}

	cfg, err := config.Load(app.deps.ConfigRepo, cliArgs.ConfigFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return cliArgs, cfg, out, nil
}

// runReport roda o relatório interativo e imprime o texto no stdout.
func (app *CLIApp) runReport(cmd *cobra.Command, _ []string) error {
	cliArgs, cfg, out, err := app.prepare(cmd)
	if err != nil {
		return err
	}
	if err := cfg.ValidateInteractive(); err != nil {
		return err
	}

	uc := usecase.NewReportUseCase(
		app.deps.NewAnalyticsRepo(cfg.API.BaseURL, cfg.API.Token),
		nil,
		app.deps.ExportRepo,
		out,
		app.deps.Metrics,
		cfg,
		app.deps.Clock,
	)

	text, err := uc.RunReport(cmd.Context(), cliArgs)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

// runSend executa o modo agendado uma vez.
func (app *CLIApp) runSend(cmd *cobra.Command, _ []string) error {
	cliArgs, cfg, out, err := app.prepare(cmd)
	if err != nil {
		return err
	}
	if err := cfg.ValidateScheduled(); err != nil {
		return err
	}

	mailRepo, err := app.mailRepository(cmd.Context(), cfg, out, cliArgs.DryRun)
	if err != nil {
		return err
	}

	uc := app.scheduledUseCase(cfg, mailRepo, out)
	return uc.RunScheduled(cmd.Context())
}

func (app *CLIApp) mailRepository(ctx context.Context, cfg *types.Config, out types.ConsoleInterface, dryRun bool) (repository.MailRepository, error) {
	if dryRun {
		return mail.NewConsoleRepository(out), nil
	}
	return app.deps.NewMailRepo(ctx, cfg.SES, out)
}

func (app *CLIApp) scheduledUseCase(cfg *types.Config, mailRepo repository.MailRepository, out types.ConsoleInterface) *usecase.ReportUseCase {
	return usecase.NewReportUseCase(
		app.deps.NewAnalyticsRepo(cfg.API.BaseURL, cfg.ScheduledToken()),
		mailRepo,
		nil,
		out,
		app.deps.Metrics,
		cfg,
		app.deps.Clock,
	)
}

// runServe sobe o trigger HTTP, o cron e o servidor de métricas até SIGINT/SIGTERM.
func (app *CLIApp) runServe(cmd *cobra.Command, _ []string) error {
	_, cfg, out, err := app.prepare(cmd)
	if err != nil {
		return err
	}
	if err := cfg.ValidateInteractive(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interactive := usecase.NewReportUseCase(
		app.deps.NewAnalyticsRepo(cfg.API.BaseURL, cfg.API.Token),
		nil,
		nil,
		out,
		app.deps.Metrics,
		cfg,
		app.deps.Clock,
	)

	var sched *scheduler.Scheduler
	if err := cfg.ValidateScheduled(); err != nil {
		out.LogWarning("Scheduled report disabled: %v", err)
	} else {
		mailRepo, err := app.deps.NewMailRepo(ctx, cfg.SES, out)
		if err != nil {
			return err
		}
		sched, err = scheduler.New(cfg.Scheduled.Cron, app.scheduledUseCase(cfg, mailRepo, out), out)
		if err != nil {
			return err
		}
		sched.Start(ctx)
	}

	shutdownMetrics := metrics.StartServer(cfg.Metrics.Addr, app.deps.Metrics, out)

	server := httpapi.NewServer(cfg.Server.Addr, httpapi.SetupRoutes(httpapi.NewHandlers(interactive, out)))
	serveErr := make(chan error, 1)
	go func() {
		out.LogInfo("Report server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		out.LogInfo("Shutting down...")
	case err := <-serveErr:
		if err != nil {
			out.LogError("Report server error: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if sched != nil {
		select {
		case <-sched.Stop().Done():
		case <-shutdownCtx.Done():
		}
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		out.LogError("Report server shutdown: %v", err)
	}
	if err := shutdownMetrics(shutdownCtx); err != nil {
		out.LogError("Metrics server shutdown: %v", err)
	}
	return nil
}
