package engine

import "sync"

// projectLocks serializes writes to Stages, GeneratedCode, and
// VersionHistory within one project behind a per-project mutex, held by
// the orchestrator for the duration of a public operation (spec.md §5).
// Modeled on the per-server reinit mutex in pkg/mcp/client.go.
type projectLocks struct {
	mu sync.Map // projectID -> *sync.Mutex
}

func (p *projectLocks) lock(projectID string) func() {
	muI, _ := p.mu.LoadOrStore(projectID, &sync.Mutex{})
	mu := muI.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
