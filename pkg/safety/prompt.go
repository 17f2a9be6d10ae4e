package safety

import (
	"fmt"

	"github.com/plcforge/plcforge/internal/domain"
)

const systemPrompt = `You are a Safety Assessment Expert specializing in PLC control systems.

Your task is to interrogate generated PLC code against the user's safety manual and identify potential safety violations.

Output your assessment in this EXACT format:

==============================
SAFETY ASSESSMENT
==============================
Overall Status: [SAFE / WARNING / UNSAFE]
Risk Level: [LOW / MEDIUM / HIGH / CRITICAL]

==============================
COMPLIANCE ANALYSIS
==============================
[Analysis of code against safety rules]

==============================
MISSING CHECKS
==============================
[List required safety checks not present in the code, one per line]
- Missing Check 1: [Description]

==============================
HAZARDS
==============================
[List potential hazards, one per line]
- Hazard 1: [Description]

==============================
VIOLATIONS
==============================
[List any safety rule violations]
- Violation 1: [Rule violated + explanation]

==============================
REQUIRED CORRECTIONS
==============================
[List required safety improvements]
- Correction 1: [What must be done]

==============================
RECOMMENDATIONS
==============================
[Additional safety recommendations]
- Recommendation 1

Be thorough and focus on SAFETY-CRITICAL issues. If code is safe, say so clearly.`

func buildUserMessage(programName, executionType string, globalLabels, localLabels, programBody, safetyContext string) string {
	return fmt.Sprintf(`Interrogate this PLC code against the safety manual.

=== GENERATED CODE ===
Program Name: %s
Execution Type: %s

Global Labels:
%s

Local Labels:
%s

Program Body:
%s

=== RELEVANT SAFETY RULES ===
%s

Perform complete safety assessment and identify all potential hazards.`, programName, executionType, globalLabels, localLabels, programBody, safetyContext)
}

// formatLabels renders up to the first 10 labels as "- Name: DataType"
// lines, matching the reference interrogator's truncation.
func formatLabels(labels []domain.Label) string {
	if len(labels) == 0 {
		return "No labels"
	}
	limit := len(labels)
	if limit > 10 {
		limit = 10
	}
	out := ""
	for i := 0; i < limit; i++ {
		out += fmt.Sprintf("- %s: %s\n", orNA(labels[i].Name), orNA(labels[i].DataType))
	}
	if len(labels) > 10 {
		out += fmt.Sprintf("... and %d more\n", len(labels)-10)
	}
	return out
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

const chunksPerQuery = 5
