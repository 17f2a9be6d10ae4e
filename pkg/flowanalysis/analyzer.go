// Package flowanalysis extracts deterministic keyword/structural features
// from raw process-description text (C5). It is a pure function: no
// retrieval, no LLM call, no persistence.
package flowanalysis

import (
	"regexp"
	"sort"
	"strings"

	"github.com/plcforge/plcforge/internal/domain"
)

var flowKeywords = map[string][]string{
	"start":     {"start", "begin", "initialize", "init", "startup"},
	"stop":      {"stop", "end", "shutdown", "halt", "terminate"},
	"emergency": {"emergency", "e-stop", "estop", "abort", "panic"},
	"safety":    {"safety", "interlock", "guard", "protect", "secure"},
	"sensor":    {"sensor", "detect", "check", "verify", "confirm"},
	"actuator":  {"motor", "valve", "cylinder", "conveyor", "pump", "heater"},
	"condition": {"if", "when", "while", "until", "after", "before"},
	"sequence":  {"then", "next", "after", "following", "subsequently"},
}

// Analyze computes FlowFeatures over raw text, matching the reference
// keyword lists and complexity formula exactly.
func Analyze(text string) domain.FlowFeatures {
	lower := strings.ToLower(text)

	return domain.FlowFeatures{
		HasStart:        detectKeywords(lower, flowKeywords["start"]),
		HasStop:         detectKeywords(lower, flowKeywords["stop"]),
		HasEmergency:    detectKeywords(lower, flowKeywords["emergency"]),
		HasSafety:       detectKeywords(lower, flowKeywords["safety"]),
		Sensors:         extractDevices(lower, "sensor"),
		Actuators:       extractDevices(lower, "actuator"),
		HasConditions:   detectKeywords(lower, flowKeywords["condition"]),
		HasSequence:     detectKeywords(lower, flowKeywords["sequence"]),
		ComplexityScore: complexity(text, lower),
		WordCount:       len(strings.Fields(text)),
		LineCount:       len(strings.Split(text, "\n")),
	}
}

func detectKeywords(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// extractDevices finds every word-boundary extension of each keyword for
// the given category (e.g. "sensor" also matches "sensors"), deduplicated
// and returned in sorted order for deterministic output.
func extractDevices(lower, category string) []string {
	keywords := flowKeywords[category]
	seen := make(map[string]bool)
	for _, kw := range keywords {
		pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\w*\b`)
		for _, m := range pattern.FindAllString(lower, -1) {
			seen[m] = true
		}
	}
	out := make([]string, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

func complexity(text, lower string) int {
	score := 0

	wordCount := len(strings.Fields(text))
	score += min(wordCount/50, 5)

	conditionCount := 0
	for _, kw := range flowKeywords["condition"] {
		if strings.Contains(lower, kw) {
			conditionCount++
		}
	}
	score += min(conditionCount, 5)

	score += min(len(extractDevices(lower, "actuator")), 5)

	return score
}
