package console

import (
	"fmt"
	"strings"
	"sync"

	"github.com/diillson/cf-analytics-report/internal/shared/types"
)

// Recorder implementa ConsoleInterface guardando as mensagens em memória.
// Usado em testes e em execuções com --quiet.
type Recorder struct {
	mu    sync.Mutex
	lines []string
}

// NewRecorder cria um Recorder vazio.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
}

// Lines returns a copy of every recorded line.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Contains reports whether any recorded line contains substr.
func (r *Recorder) Contains(substr string) bool {
	for _, l := range r.Lines() {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func (r *Recorder) Print(a ...interface{}) { r.record(fmt.Sprint(a...)) }

func (r *Recorder) Printf(format string, a ...interface{}) { r.record(fmt.Sprintf(format, a...)) }

func (r *Recorder) Println(a ...interface{}) { r.record(fmt.Sprint(a...)) }

func (r *Recorder) LogInfo(format string, a ...interface{}) {
	r.record("INFO " + fmt.Sprintf(format, a...))
}

func (r *Recorder) LogWarning(format string, a ...interface{}) {
	r.record("WARNING " + fmt.Sprintf(format, a...))
}

func (r *Recorder) LogError(format string, a ...interface{}) {
	r.record("ERROR " + fmt.Sprintf(format, a...))
}

func (r *Recorder) LogSuccess(format string, a ...interface{}) {
	r.record("SUCCESS " + fmt.Sprintf(format, a...))
}

type recordedStatus struct {
	r *Recorder
}

func (r *Recorder) Status(message string) types.StatusHandle {
	r.record("STATUS " + message)
	return &recordedStatus{r: r}
}

func (s *recordedStatus) Update(message string) { s.r.record("STATUS " + message) }

func (s *recordedStatus) Stop() {}

func (r *Recorder) CreateTable() types.TableInterface {
	return newTable()
}

func (r *Recorder) DisplayZoneBars(title string, bars []types.ZoneBar) {
	r.record(fmt.Sprintf("CHART %s (%d zones)", title, len(bars)))
}
