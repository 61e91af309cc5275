package core

import (
	"context"
	"time"
)

// Article is the finalized content artifact handed to the persistence
// boundary. It exists in well-formed shape only on a Completed run.
type Article struct {
	ID          string            `json:"id"`
	Slug        string            `json:"slug"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Body        string            `json:"body"`
	Tier        ContentTier       `json:"tier"`
	Hook        HookType          `json:"hook"`
	Format      FormatType        `json:"format"`
	Keywords    []string          `json:"keywords,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// ContentSink accepts finalized articles for persistence. The engine calls
// it only after a run completes; failed runs hand over nothing.
type ContentSink interface {
	Publish(ctx context.Context, article Article) error
}
