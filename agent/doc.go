// Package agent implements the editorial cycle's five specialized agents on
// top of a shared capability contract: ProduceText for free-form generation
// and ProduceStructured for schema-validated output, both routed through the
// deadline-guarded TimedCall primitive with per-class timeout budgets.
//
// Agents are stateless with respect to configuration: every operation takes
// its AgentConfig snapshot as a parameter, so only the engine ever owns or
// mutates tunables and no agent can reach another agent's settings.
package agent
