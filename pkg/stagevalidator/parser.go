package stagevalidator

import (
	"strings"

	"github.com/plcforge/plcforge/internal/domain"
)

// section is the current-section state of the parse scan (spec.md §9:
// "explicit state machine... enum of current-section states").
type section int

const (
	sectionNone section = iota
	sectionStatus
	sectionIssues
	sectionRecommendations
	sectionCategorized
	sectionAnalysis
)

// parseState accumulates the in-progress categorized issue while scanning
// the categorized-issues section.
type parseState struct {
	result  domain.ValidationResult
	section section
	issue   *domain.CategorizedIssue
}

// Parse scans validation_text line by line, matching boundaries by the
// same substring checks as the reference parser (order matters: a
// "CATEGORIZED ISSUES" line must not also match the looser "ISSUES"
// check). Every section is best-effort: unparseable content leaves the
// corresponding field at its zero value rather than raising.
func Parse(text string) domain.ValidationResult {
	st := &parseState{}

	for _, rawLine := range strings.Split(text, "\n") {
		line := rawLine
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.Contains(line, "VALIDATION STATUS"):
			st.section = sectionStatus
			continue
		case line == "==============================":
			continue
		case strings.Contains(line, "CATEGORIZED ISSUES"):
			st.commitIssue()
			st.section = sectionCategorized
			continue
		case strings.HasPrefix(trimmed, "ISSUES") && !strings.Contains(line, "CATEGORIZED"):
			st.section = sectionIssues
			continue
		case strings.Contains(line, "RECOMMENDATIONS"):
			st.section = sectionRecommendations
			continue
		case strings.Contains(line, "ANALYSIS SUMMARY"):
			st.commitIssue()
			st.section = sectionAnalysis
			continue
		}

		switch st.section {
		case sectionIssues:
			if item, ok := bulletItem(trimmed); ok {
				st.result.Issues = append(st.result.Issues, item)
			}
		case sectionRecommendations:
			if item, ok := bulletItem(trimmed); ok {
				st.result.Recommendations = append(st.result.Recommendations, item)
			}
		case sectionCategorized:
			st.scanCategorized(trimmed)
		case sectionAnalysis:
			st.scanAnalysis(trimmed)
		}
	}
	st.commitIssue()

	st.result.Status = "FAIL"
	if strings.Contains(text, "Status: PASS") {
		st.result.Status = "PASS"
	}

	criticalCount := 0
	for _, issue := range st.result.CategorizedIssues {
		if issue.Severity == domain.SeverityCritical {
			criticalCount++
		}
	}
	st.result.Valid = criticalCount == 0
	if st.result.Valid {
		st.result.Status = "PASS"
	}

	return st.result
}

func bulletItem(trimmed string) (string, bool) {
	if !strings.HasPrefix(trimmed, "-") {
		return "", false
	}
	item := strings.TrimSpace(trimmed[1:])
	return item, item != ""
}

func (st *parseState) commitIssue() {
	if st.issue != nil {
		st.result.CategorizedIssues = append(st.result.CategorizedIssues, *st.issue)
		st.issue = nil
	}
}

var severityTags = []struct {
	tag      string
	severity domain.IssueSeverity
}{
	{"[CRITICAL]", domain.SeverityCritical},
	{"[MODERATE]", domain.SeverityModerate},
	{"[OPTIONAL]", domain.SeverityOptional},
}

func (st *parseState) scanCategorized(trimmed string) {
	if trimmed == "" {
		return
	}

	for _, tag := range severityTags {
		if strings.HasPrefix(trimmed, tag.tag) {
			st.commitIssue()
			st.issue = &domain.CategorizedIssue{
				Severity: tag.severity,
				Title:    strings.TrimSpace(strings.TrimPrefix(trimmed, tag.tag)),
			}
			return
		}
	}

	if st.issue == nil {
		return
	}
	switch {
	case strings.HasPrefix(trimmed, "Description:"):
		st.issue.Description = strings.TrimSpace(strings.TrimPrefix(trimmed, "Description:"))
	case strings.HasPrefix(trimmed, "Recommended Logic:"):
		// content continuation lines append after this marker
	case st.issue.Description != "":
		if st.issue.RecommendedLogic != "" {
			st.issue.RecommendedLogic += " "
		}
		st.issue.RecommendedLogic += trimmed
	}
}

func (st *parseState) scanAnalysis(trimmed string) {
	if trimmed == "" {
		return
	}
	switch {
	case strings.HasPrefix(trimmed, "Semantic Analysis:"):
		st.result.Summary.SemanticAnalysis = strings.TrimSpace(strings.TrimPrefix(trimmed, "Semantic Analysis:"))
	case strings.HasPrefix(trimmed, "Logical Consistency:"):
		st.result.Summary.LogicalConsistency = strings.TrimSpace(strings.TrimPrefix(trimmed, "Logical Consistency:"))
	case strings.HasPrefix(trimmed, "Safety Compliance:"):
		st.result.Summary.SafetyCompliance = strings.TrimSpace(strings.TrimPrefix(trimmed, "Safety Compliance:"))
	}
}
