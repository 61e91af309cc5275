// Package core contains the shared data model and contracts of EditorialMesh:
// the deadline-guarded call primitive every agent routes model traffic
// through, the error taxonomy stages fail with, agent configuration and
// override types, the per-cycle PipelineRun aggregate with its ordered
// invocation log, and the interfaces behind which external collaborators
// (metrics store, analytics source, content sink, progress sink) live.
//
// Nothing in this package talks to a model provider or performs I/O; it is
// the vocabulary the agent and engine packages are written in.
package core
