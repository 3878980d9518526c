package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/diillson/cf-analytics-report/internal/shared/types"
)

// StartServer serve /metrics em addr numa goroutine e devolve a função de shutdown.
func StartServer(addr string, m *Metrics, console types.ConsoleInterface) (shutdown func(context.Context) error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, `<html><body><h1>Cloudflare Analytics Report Metrics</h1><p><a href="/metrics">/metrics</a></p></body></html>`)
	})

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		console.LogInfo("Metrics server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			console.LogError("Metrics server error: %v", err)
		}
	}()

	return server.Shutdown
}
