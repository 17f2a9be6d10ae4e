package retrieval

import "fmt"

// Well-known corpus ids. PerProjectSafetyCorpus is parameterized by
// project id since each project may ingest its own safety manuals.
const (
	CorpusPrimaryManuals      = "primary_manuals"
	CorpusDefaultSafetyManuals = "default_safety_manuals"
)

// PerProjectSafetyCorpus returns the corpus id for a project's own
// uploaded safety manuals.
func PerProjectSafetyCorpus(projectID string) string {
	return fmt.Sprintf("per_project_safety_manual_%s", projectID)
}
