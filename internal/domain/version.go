package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// VersionLevel classifies the granularity of a version-history entry.
type VersionLevel string

const (
	VersionEvent      VersionLevel = "event"
	VersionSession    VersionLevel = "session"
	VersionCheckpoint VersionLevel = "checkpoint"
)

// Action labels every mutation the engine can record against a stage.
type Action string

const (
	ActionEditLogic   Action = "edit_logic"
	ActionGenerateCode Action = "generate_code"
	ActionEditCode    Action = "edit_code"
	ActionValidate    Action = "validate"
	ActionSafetyCheck Action = "safety_check"
)

// VersionHistoryEntry is an append-only audit record of one mutating
// action against a stage. Entries are never updated or deleted.
type VersionHistoryEntry struct {
	ID            string                 `json:"id"`
	CodeID        *string                `json:"code_id,omitempty"`
	StageID       string                 `json:"stage_id"`
	UserID        string                 `json:"user_id"`
	Level         VersionLevel           `json:"level"`
	Action        Action                 `json:"action"`
	VersionNumber string                 `json:"version_number"`
	OldCode       *string                `json:"old_code,omitempty"`
	NewCode       *string                `json:"new_code,omitempty"`
	Diff          *string                `json:"diff,omitempty"`
	SessionID     *string                `json:"session_id,omitempty"`
	Timestamp     time.Time              `json:"timestamp"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

// Semver is a parsed major.minor.patch version, used as the monotone
// clock per stage.
type Semver struct {
	Major, Minor, Patch int
}

// String renders dotted major.minor.patch form.
func (v Semver) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Less reports whether v sorts strictly before o under lexicographic
// (major,minor,patch) order.
func (v Semver) Less(o Semver) bool {
	if v.Major != o.Major {
		return v.Major < o.Major
	}
	if v.Minor != o.Minor {
		return v.Minor < o.Minor
	}
	return v.Patch < o.Patch
}

// ParseSemver parses a dotted major.minor.patch string. Malformed
// components are treated as zero rather than raised as an error; stage
// version numbers are engine-controlled, not user input.
func ParseSemver(s string) Semver {
	parts := strings.SplitN(s, ".", 3)
	get := func(i int) int {
		if i >= len(parts) {
			return 0
		}
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return 0
		}
		return n
	}
	return Semver{Major: get(0), Minor: get(1), Patch: get(2)}
}

// Bump applies the increment rule for the given action: validate and
// generate_code bump minor and zero patch; edit_logic, edit_code, and
// safety_check bump patch only.
func (v Semver) Bump(action Action) Semver {
	switch action {
	case ActionValidate, ActionGenerateCode:
		return Semver{Major: v.Major, Minor: v.Minor + 1, Patch: 0}
	default:
		return Semver{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}

// VersionSummary is a convenience view over a stage's ledger: its current
// version, the total number of entries, and the action and timestamp of
// the most recent entry, so callers don't need to walk the full history
// just to render a status chip.
type VersionSummary struct {
	StageID       string
	CurrentVersion string
	EntryCount    int
	LastAction    *Action
	LastAt        *time.Time
}

// SummarizeVersions builds a VersionSummary from a stage's history
// entries, which must already be ordered oldest-first.
func SummarizeVersions(stageID string, entries []VersionHistoryEntry) VersionSummary {
	s := VersionSummary{StageID: stageID}
	if len(entries) == 0 {
		return s
	}
	s.EntryCount = len(entries)
	last := entries[len(entries)-1]
	s.CurrentVersion = last.VersionNumber
	lastTS := last.Timestamp
	s.LastAt = &lastTS
	lastAction := last.Action
	s.LastAction = &lastAction
	return s
}
