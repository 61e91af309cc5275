package engine

import (
	"fmt"

	"github.com/hupe1980/editorialmesh/core"
)

// cycleConfigs builds this cycle's AgentConfig snapshots: cloned baselines
// with the most recent sealed AnalystReport's overrides applied. Overrides
// live for exactly one cycle; the baselines they were cloned from are never
// persisted with changes.
func (e *Engine) cycleConfigs(run *core.PipelineRun) map[core.AgentClass]core.AgentConfig {
	configs := make(map[core.AgentClass]core.AgentConfig, len(e.baselines))
	for class, baseline := range e.baselines {
		configs[class] = baseline.Clone()
	}

	if e.cycles == nil {
		return configs
	}
	prior, ok := e.cycles.LatestReport()
	if !ok {
		// First-ever cycle: baseline behavior, no report to consume.
		return configs
	}

	e.applyOverrides(run, configs, prior.Overrides)
	return configs
}

// applyOverrides validates each override entry against the target agent's
// recognized tunable set. Valid keys are applied to the target's snapshot
// only; unknown targets or keys are rejected, recorded on the run, logged
// with the override_rejected kind and never applied. Rejection is non-fatal:
// the cycle proceeds.
func (e *Engine) applyOverrides(run *core.PipelineRun, configs map[core.AgentClass]core.AgentConfig, overrides []core.AgentOverride) {
	for _, ov := range overrides {
		cfg, ok := configs[ov.Target]
		if !ok {
			reason := fmt.Sprintf("unknown target agent %q", ov.Target)
			run.RejectOverride(ov.Target, "", reason)
			e.logger.Warn("engine.override.rejected", "kind", core.ErrorKindOverrideRejected, "target", ov.Target, "reason", reason)
			continue
		}

		for key, value := range ov.Changes {
			if !ov.Target.Recognizes(key) {
				reason := fmt.Sprintf("key %q not recognized by %s", key, ov.Target)
				run.RejectOverride(ov.Target, key, reason)
				e.logger.Warn("engine.override.rejected", "kind", core.ErrorKindOverrideRejected, "target", ov.Target, "key", key, "reason", reason)
				continue
			}
			cfg.Set(key, value)
			e.logger.Info("engine.override.applied", "target", ov.Target, "key", key, "value", value, "justification", ov.Justification)
		}
	}
}
