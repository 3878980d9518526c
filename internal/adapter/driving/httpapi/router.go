package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/diillson/cf-analytics-report/internal/domain/entity"
	"github.com/diillson/cf-analytics-report/internal/shared/types"
)

// HealthPath é o caminho reservado que responde sucesso sem rodar o relatório.
const HealthPath = "/favicon.ico"

// RunIDHeader carries the id of the report run that produced the response.
const RunIDHeader = "X-Report-Run-ID"

// InteractiveReporter runs the on-demand report over every accessible account.
type InteractiveReporter interface {
	RunInteractive(ctx context.Context) (string, []entity.AccountResult, error)
}

// Handlers holds the HTTP trigger handlers.
type Handlers struct {
	reporter InteractiveReporter
	console  types.ConsoleInterface
}

func NewHandlers(reporter InteractiveReporter, console types.ConsoleInterface) *Handlers {
	return &Handlers{reporter: reporter, console: console}
}

// SetupRoutes monta o router: health em HealthPath, relatório em qualquer outro caminho/método.
func SetupRoutes(h *Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.console))
	r.Use(middleware.Recoverer)

	r.Handle(HealthPath, http.HandlerFunc(h.Health))
	r.Handle("/", http.HandlerFunc(h.Report))
	r.NotFound(h.Report)
	r.MethodNotAllowed(h.Report)

	return r
}

// Health responde o texto fixo "Success".
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "Success")
}

// Report roda o modo interativo e devolve o texto concatenado, ou 500 se a listagem de contas falhar.
func (h *Handlers) Report(w http.ResponseWriter, r *http.Request) {
	runID := uuid.NewString()
	w.Header().Set(RunIDHeader, runID)

	text, _, err := h.reporter.RunInteractive(r.Context())
	if err != nil {
		h.console.LogError("Report run %s failed: %v", runID, err)
		writeText(w, http.StatusInternalServerError, "Error: "+err.Error())
		return
	}

	writeText(w, http.StatusOK, text)
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

func requestLogger(console types.ConsoleInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			console.LogInfo("%s %s -> %d (%s) [%s]",
				r.Method, r.URL.Path, ww.Status(), time.Since(start).Round(time.Millisecond), middleware.GetReqID(r.Context()))
		})
	}
}

// NewServer creates the HTTP server for the on-demand trigger.
// No write timeout: a report run blocks until every remote call resolves.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
