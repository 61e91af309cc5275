// Package content provides the default in-memory ContentSink: the boundary
// finalized articles are handed across on completed cycles. Production
// deployments persist articles for real; this implementation retains them
// in memory for development and tests.
package content

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/editorialmesh/core"
)

// InMemorySink is a thread-safe, process-local ContentSink.
type InMemorySink struct {
	mu       sync.RWMutex
	articles []core.Article
}

// NewInMemorySink creates an empty sink.
func NewInMemorySink() *InMemorySink {
	return &InMemorySink{}
}

// Publish implements core.ContentSink. Malformed artifacts are refused; the
// engine only hands over well-formed articles on completed runs.
func (s *InMemorySink) Publish(_ context.Context, article core.Article) error {
	if article.Title == "" || article.Body == "" {
		return fmt.Errorf("article %s is not well-formed", article.ID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles = append(s.articles, article)
	return nil
}

// Articles returns the published articles in publish order.
func (s *InMemorySink) Articles() []core.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Article, len(s.articles))
	copy(out, s.articles)
	return out
}
