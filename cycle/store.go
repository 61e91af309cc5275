// Package cycle provides the default in-memory CycleStore: the archive of
// sealed pipeline runs and analyst reports the engine's override feedback
// loop reads from. Production deployments supply a durable implementation;
// this one is safe for local development and tests.
package cycle

import (
	"fmt"
	"sync"

	"github.com/hupe1980/editorialmesh/core"
)

// InMemoryStore is a thread-safe, process-local CycleStore.
type InMemoryStore struct {
	mu      sync.RWMutex
	runs    []*core.PipelineRun
	reports []core.AnalystReport
}

// NewInMemoryStore creates an empty store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// SaveRun archives a sealed run. Unsealed runs are refused: the archive
// holds immutable records only.
func (s *InMemoryStore) SaveRun(run *core.PipelineRun) error {
	if run == nil {
		return fmt.Errorf("nil run")
	}
	if !run.Sealed() {
		return fmt.Errorf("run %s is not sealed", run.ID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, run)
	return nil
}

// SaveReport archives a sealed analyst report.
func (s *InMemoryStore) SaveReport(report core.AnalystReport) error {
	if err := report.Validate(); err != nil {
		return fmt.Errorf("report %s invalid: %w", report.ID, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, report)
	return nil
}

// LatestReport returns the most recently archived report, or false when no
// cycle has produced one yet.
func (s *InMemoryStore) LatestReport() (core.AnalystReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.reports) == 0 {
		return core.AnalystReport{}, false
	}
	return s.reports[len(s.reports)-1], true
}

// Runs returns the archived runs in completion order.
func (s *InMemoryStore) Runs() []*core.PipelineRun {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*core.PipelineRun, len(s.runs))
	copy(out, s.runs)
	return out
}

// Reports returns the archived reports in creation order.
func (s *InMemoryStore) Reports() []core.AnalystReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.AnalystReport, len(s.reports))
	copy(out, s.reports)
	return out
}
