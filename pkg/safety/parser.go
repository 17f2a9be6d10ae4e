package safety

import (
	"strings"

	"github.com/plcforge/plcforge/internal/domain"
)

type section int

const (
	sectionNone section = iota
	sectionCompliance
	sectionMissingChecks
	sectionHazards
	sectionViolations
	sectionCorrections
	sectionRecommendations
)

// Parse mirrors the C8 state-machine parser's shape: a current-section
// enum driven by the exact headers this package's own prompt requests,
// with "-"-prefixed list items collected per section and everything else
// best-effort.
func Parse(text string) domain.SafetyResult {
	result := domain.SafetyResult{OverallStatus: "UNSAFE", RiskLevel: "UNKNOWN"}

	switch {
	case strings.Contains(text, "Overall Status: SAFE"):
		result.OverallStatus = "SAFE"
	case strings.Contains(text, "Overall Status: WARNING"):
		result.OverallStatus = "WARNING"
	}
	for _, level := range []string{"LOW", "MEDIUM", "HIGH", "CRITICAL"} {
		if strings.Contains(text, "Risk Level: "+level) {
			result.RiskLevel = level
			break
		}
	}

	current := sectionNone
	var buf []string

	commit := func() {
		items := extractListItems(buf)
		switch current {
		case sectionCompliance:
			result.ComplianceAnalysis = strings.TrimSpace(strings.Join(buf, "\n"))
		case sectionMissingChecks:
			result.MissingChecks = items
		case sectionHazards:
			result.Hazards = items
		case sectionViolations:
			result.Violations = items
		case sectionCorrections:
			result.RequiredCorrections = items
		case sectionRecommendations:
			result.Recommendations = items
		}
		buf = nil
	}

	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.Contains(line, "COMPLIANCE ANALYSIS"):
			commit()
			current = sectionCompliance
			continue
		case strings.Contains(line, "MISSING CHECKS"):
			commit()
			current = sectionMissingChecks
			continue
		case strings.Contains(line, "HAZARDS"):
			commit()
			current = sectionHazards
			continue
		case strings.Contains(line, "VIOLATIONS"):
			commit()
			current = sectionViolations
			continue
		case strings.Contains(line, "REQUIRED CORRECTIONS"):
			commit()
			current = sectionCorrections
			continue
		case strings.Contains(line, "RECOMMENDATIONS"):
			commit()
			current = sectionRecommendations
			continue
		case line == "==============================":
			continue
		}

		if current != sectionNone {
			trimmed := strings.TrimSpace(line)
			if trimmed != "" {
				buf = append(buf, line)
			}
		}
	}
	commit()

	return result
}

func extractListItems(lines []string) []string {
	var items []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "-") {
			item := strings.TrimSpace(trimmed[1:])
			if item != "" {
				items = append(items, item)
			}
		}
	}
	return items
}
