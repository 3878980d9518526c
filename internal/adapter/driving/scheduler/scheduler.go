package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/diillson/cf-analytics-report/internal/shared/types"
)

// ScheduledReporter runs the scheduled report for the designated account.
type ScheduledReporter interface {
	RunScheduled(ctx context.Context) error
}

// Scheduler dispara o relatório agendado numa expressão cron padrão (5 campos).
// Execuções nunca se sobrepõem: se a anterior ainda roda, o disparo é pulado.
type Scheduler struct {
	cron     *cron.Cron
	schedule cron.Schedule
	expr     string
	reporter ScheduledReporter
	console  types.ConsoleInterface
	entryID  cron.EntryID
}

// New valida expr e prepara o scheduler sem iniciá-lo.
func New(expr string, reporter ScheduledReporter, console types.ConsoleInterface) (*Scheduler, error) {
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron schedule %q: %w", expr, err)
	}

	logger := &cronLogger{console: console}
	c := cron.New(cron.WithChain(
		cron.Recover(logger),
		cron.SkipIfStillRunning(logger),
	), cron.WithLogger(logger))

	return &Scheduler{
		cron:     c,
		schedule: schedule,
		expr:     expr,
		reporter: reporter,
		console:  console,
	}, nil
}

// Start registra o job e inicia o cron em background. ctx é repassado a cada execução.
func (s *Scheduler) Start(ctx context.Context) {
	s.entryID = s.cron.Schedule(s.schedule, cron.FuncJob(func() {
		s.RunOnce(ctx)
	}))
	s.cron.Start()
	s.console.LogInfo("Scheduled report enabled (%s), next run at %s", s.expr, s.Next().Format(time.RFC3339))
}

// Stop para o cron; o contexto retornado termina quando o job em andamento acabar.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// Next returns the next activation time (zero before Start).
func (s *Scheduler) Next() time.Time {
	if s.entryID == 0 {
		return s.schedule.Next(time.Now())
	}
	return s.cron.Entry(s.entryID).Next
}

// RunOnce executa o relatório agendado; falhas só são registradas, não há chamador.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.console.LogInfo("Running scheduled report")
	if err := s.reporter.RunScheduled(ctx); err != nil {
		s.console.LogError("Scheduled report failed: %v", err)
	}
}

// cronLogger adapta o console ao cron.Logger.
type cronLogger struct {
	console types.ConsoleInterface
}

func (l *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	// o cron registra cada wake/schedule em Info; só as execuções puladas interessam
	if msg == "skip" {
		l.console.LogWarning("cron: previous scheduled report still running, skipping this run")
	}
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.console.LogError("cron: %s: %v %v", msg, err, keysAndValues)
}
