// Package engine sequences one editorial cycle: the once-per-cycle analysis
// phase followed by the fixed Strategist → Writer → Humanizer → SEO inner
// pipeline per article, each stage gated on the previous stage's success.
//
// The engine exclusively owns the cycle's PipelineRun and the per-cycle
// AgentConfig snapshots. At cycle start it loads the most recent sealed
// AnalystReport, validates each override against the target agent's
// recognized tunables, applies valid entries for this cycle only and records
// the rejected ones. A stage failure seals the run at that stage with its
// error kind; no later stage runs and nothing is retried within the cycle.
//
// Stages execute strictly sequentially. Concurrency exists only inside the
// TimedCall race between a model call and its deadline, which is the sole
// suspension point of the system.
package engine
