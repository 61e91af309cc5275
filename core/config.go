package core

import "time"

// AgentClass identifies one of the five specialized agents of the editorial
// cycle. It doubles as the target identity of overrides and the key of the
// per-class tunable registry.
type AgentClass string

const (
	// AgentClassAnalyst fuses performance metrics into an AnalystReport.
	AgentClassAnalyst AgentClass = "analyst"
	// AgentClassStrategist turns a report into a content brief.
	AgentClassStrategist AgentClass = "strategist"
	// AgentClassWriter produces the article draft.
	AgentClassWriter AgentClass = "writer"
	// AgentClassHumanizer rewrites the draft for tone and flow.
	AgentClassHumanizer AgentClass = "humanizer"
	// AgentClassSEO finalizes title, description and keyword placement.
	AgentClassSEO AgentClass = "seo"
)

// ConfigKey names a recognized agent tunable. Tunables are a closed set per
// agent class; override payloads carrying keys outside the target's set are
// rejected at the engine boundary rather than stored into agent logic.
type ConfigKey string

const (
	// ConfigKeyLookbackDays (Analyst): analytics window in days.
	ConfigKeyLookbackDays ConfigKey = "lookbackDays"
	// ConfigKeyAssertiveness (Strategist): 0..1 bias toward bold angles.
	ConfigKeyAssertiveness ConfigKey = "assertivenessLevel"
	// ConfigKeyPreferredTier (Strategist): default content tier when no
	// report recommendation is present.
	ConfigKeyPreferredTier ConfigKey = "preferredTier"
	// ConfigKeyWordCountCeiling (Writer): maximum draft length in words.
	ConfigKeyWordCountCeiling ConfigKey = "wordCountCeiling"
	// ConfigKeyLowerWordCount (Writer): when true the effective ceiling is
	// reduced for the cycle, biasing toward shorter-form drafts.
	ConfigKeyLowerWordCount ConfigKey = "lowerWordCount"
	// ConfigKeySubheadingInterval (Writer): target words between subheadings.
	ConfigKeySubheadingInterval ConfigKey = "subheadingInterval"
	// ConfigKeyReduceHype (Humanizer): when true, hype framing is toned down.
	ConfigKeyReduceHype ConfigKey = "reduceHype"
	// ConfigKeyToneWarmth (Humanizer): 0..1 warmth of the rewritten voice.
	ConfigKeyToneWarmth ConfigKey = "toneWarmth"
	// ConfigKeyKeywordDensity (SEO): target keyword density as a fraction.
	ConfigKeyKeywordDensity ConfigKey = "keywordDensityTarget"
	// ConfigKeyMaxTitleLength (SEO): maximum optimized title length in runes.
	ConfigKeyMaxTitleLength ConfigKey = "maxTitleLength"
)

// recognizedKeys is the per-class closed tunable set; the registry the engine
// validates override keys against.
var recognizedKeys = map[AgentClass]map[ConfigKey]struct{}{
	AgentClassAnalyst: {
		ConfigKeyLookbackDays: {},
	},
	AgentClassStrategist: {
		ConfigKeyAssertiveness: {},
		ConfigKeyPreferredTier: {},
	},
	AgentClassWriter: {
		ConfigKeyWordCountCeiling:   {},
		ConfigKeyLowerWordCount:     {},
		ConfigKeySubheadingInterval: {},
	},
	AgentClassHumanizer: {
		ConfigKeyReduceHype: {},
		ConfigKeyToneWarmth: {},
	},
	AgentClassSEO: {
		ConfigKeyKeywordDensity: {},
		ConfigKeyMaxTitleLength: {},
	},
}

// Recognizes reports whether key is a tunable of this agent class.
func (c AgentClass) Recognizes(key ConfigKey) bool {
	_, ok := recognizedKeys[c][key]
	return ok
}

// Classes returns the agent classes in pipeline order, Analyst first.
func Classes() []AgentClass {
	return []AgentClass{
		AgentClassAnalyst,
		AgentClassStrategist,
		AgentClassWriter,
		AgentClassHumanizer,
		AgentClassSEO,
	}
}

// DefaultCallTimeout is the global model-call deadline applied when neither a
// per-call override nor an agent-class default is present.
const DefaultCallTimeout = 60 * time.Second

// classTimeouts are the per-agent deadline budgets. Writer carries the
// largest structured output; Analyst the largest multi-source input.
var classTimeouts = map[AgentClass]time.Duration{
	AgentClassAnalyst:    90 * time.Second,
	AgentClassStrategist: 60 * time.Second,
	AgentClassWriter:     120 * time.Second,
	AgentClassHumanizer:  90 * time.Second,
	AgentClassSEO:        90 * time.Second,
}

// DefaultTimeout returns the class deadline budget, falling back to
// DefaultCallTimeout for unknown classes.
func (c AgentClass) DefaultTimeout() time.Duration {
	if d, ok := classTimeouts[c]; ok {
		return d
	}
	return DefaultCallTimeout
}

// AgentConfig is one agent's tunable set for a cycle. The baseline is fixed
// per class; the engine clones it at cycle start and applies validated
// overrides to the clone, so overrides never leak into the baseline and
// agents never mutate configuration themselves.
type AgentConfig struct {
	class  AgentClass
	values map[ConfigKey]any
}

// BaselineConfig returns the default tunable set for an agent class.
func BaselineConfig(class AgentClass) AgentConfig {
	values := map[ConfigKey]any{}
	switch class {
	case AgentClassAnalyst:
		values[ConfigKeyLookbackDays] = 28
	case AgentClassStrategist:
		values[ConfigKeyAssertiveness] = 0.5
		values[ConfigKeyPreferredTier] = string(TierStandard)
	case AgentClassWriter:
		values[ConfigKeyWordCountCeiling] = 1800
		values[ConfigKeyLowerWordCount] = false
		values[ConfigKeySubheadingInterval] = 300
	case AgentClassHumanizer:
		values[ConfigKeyReduceHype] = false
		values[ConfigKeyToneWarmth] = 0.6
	case AgentClassSEO:
		values[ConfigKeyKeywordDensity] = 0.015
		values[ConfigKeyMaxTitleLength] = 60
	}
	return AgentConfig{class: class, values: values}
}

// Class returns the agent class this config belongs to.
func (c AgentConfig) Class() AgentClass { return c.class }

// Clone returns an independent copy. The engine clones the baseline once per
// cycle before applying overrides.
func (c AgentConfig) Clone() AgentConfig {
	values := make(map[ConfigKey]any, len(c.values))
	for k, v := range c.values {
		values[k] = v
	}
	return AgentConfig{class: c.class, values: values}
}

// Set assigns a tunable value. Only the engine's override application path
// calls this; agents receive their config as an immutable snapshot.
func (c AgentConfig) Set(key ConfigKey, value any) { c.values[key] = value }

// Bool reads a boolean tunable, returning def when absent or mistyped.
func (c AgentConfig) Bool(key ConfigKey, def bool) bool {
	if v, ok := c.values[key].(bool); ok {
		return v
	}
	return def
}

// Int reads an integer tunable, returning def when absent or mistyped.
// Float-typed values are truncated; override payloads decoded from JSON
// arrive as float64.
func (c AgentConfig) Int(key ConfigKey, def int) int {
	switch v := c.values[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return def
	}
}

// Float reads a float tunable, returning def when absent or mistyped.
func (c AgentConfig) Float(key ConfigKey, def float64) float64 {
	switch v := c.values[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return def
	}
}

// String reads a string tunable, returning def when absent or mistyped.
func (c AgentConfig) String(key ConfigKey, def string) string {
	if v, ok := c.values[key].(string); ok {
		return v
	}
	return def
}
