package domain

// IssueSeverity is the triage level a categorized issue is tagged with by
// C8's structured output parser.
type IssueSeverity string

const (
	SeverityCritical IssueSeverity = "critical"
	SeverityModerate IssueSeverity = "moderate"
	SeverityOptional IssueSeverity = "optional"
)

// CategorizedIssue is one finding from the stage validator's structured
// output, parsed out of a "[CRITICAL]|[MODERATE]|[OPTIONAL] <title>" block.
type CategorizedIssue struct {
	Severity         IssueSeverity `json:"severity"`
	Title            string        `json:"title"`
	Description      string        `json:"description,omitempty"`
	RecommendedLogic string        `json:"recommended_logic,omitempty"`
}

// AnalysisSummary is the free-text closing section of a stage validation.
type AnalysisSummary struct {
	SemanticAnalysis   string `json:"semantic_analysis,omitempty"`
	LogicalConsistency string `json:"logical_consistency,omitempty"`
	SafetyCompliance   string `json:"safety_compliance,omitempty"`
}

// ValidationResult is C8's structured triage for one stage. Valid is true
// iff no CategorizedIssue carries SeverityCritical, regardless of the
// LLM's literal Status line.
type ValidationResult struct {
	Valid             bool               `json:"valid"`
	Status            string             `json:"status"`
	Issues            []string           `json:"issues,omitempty"`
	Recommendations   []string           `json:"recommendations,omitempty"`
	CategorizedIssues []CategorizedIssue `json:"categorized_issues,omitempty"`
	Summary           AnalysisSummary    `json:"summary"`
}

// SafetyResult is C12's structured compliance report over generated code.
type SafetyResult struct {
	OverallStatus        string   `json:"overall_status"`
	RiskLevel            string   `json:"risk_level"`
	ComplianceAnalysis   string   `json:"compliance_analysis,omitempty"`
	MissingChecks        []string `json:"missing_checks,omitempty"`
	Violations           []string `json:"violations,omitempty"`
	Hazards              []string `json:"hazards,omitempty"`
	RequiredCorrections  []string `json:"required_corrections,omitempty"`
	Recommendations      []string `json:"recommendations,omitempty"`
}
