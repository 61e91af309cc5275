package engine

import "github.com/hupe1980/editorialmesh/core"

// ChannelProgressSink forwards progress events to a buffered channel so a
// caller can drain stage transitions the way it would drain any event
// stream. Emission never blocks: if the consumer stops draining, further
// events are dropped rather than stalling a pipeline stage.
type ChannelProgressSink struct {
	ch chan core.ProgressEvent
}

// NewChannelProgressSink creates a sink with the given buffer size
// (minimum 1).
func NewChannelProgressSink(buffer int) *ChannelProgressSink {
	if buffer < 1 {
		buffer = 1
	}
	return &ChannelProgressSink{ch: make(chan core.ProgressEvent, buffer)}
}

// Progress implements core.ProgressSink.
func (s *ChannelProgressSink) Progress(event core.ProgressEvent) {
	select {
	case s.ch <- event:
	default:
	}
}

// Events returns the receive side of the sink.
func (s *ChannelProgressSink) Events() <-chan core.ProgressEvent { return s.ch }

// Close closes the event channel. Call only after the cycle has returned.
func (s *ChannelProgressSink) Close() { close(s.ch) }
