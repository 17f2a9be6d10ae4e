package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plcforge/plcforge/internal/domain"
	"github.com/plcforge/plcforge/pkg/llmgateway"
	"github.com/plcforge/plcforge/pkg/safety"
	"github.com/plcforge/plcforge/pkg/versionledger"
)

const generatedDoc = `==============================
1) GLOBAL LABEL TABLE
==============================
Label Name | Data Type | Class | Device Name | Initial Value | Constant | English | Remark
Start_Button | Bit | VAR_GLOBAL | X0 | FALSE | No | Start button |

==============================
2) PROGRAM BLOCKS
==============================
----------------------
PROGRAM BLOCK
Stage: 1 - Idle
Program Name: IDLE_PRG
Execution Type: Initial
----------------------

STRUCTURED TEXT CODE:
IF Start_Button THEN
    Ready := TRUE;
END_IF;
`

type fakeRetriever struct{}

func (fakeRetriever) Retrieve(context.Context, string, string, int) ([]domain.RetrievalResult, error) {
	return []domain.RetrievalResult{{Rank: 0, Text: "manual chunk", SourceDoc: "m.pdf"}}, nil
}

type memProjects struct {
	mu       sync.Mutex
	projects map[string]domain.Project
}

func newMemProjects() *memProjects { return &memProjects{projects: map[string]domain.Project{}} }

func (m *memProjects) GetByID(_ context.Context, id string) (domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return domain.Project{}, domain.NewNotFound("Project", id)
	}
	return p, nil
}
func (m *memProjects) Create(_ context.Context, p domain.Project) (domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects[p.ID] = p
	return p, nil
}
func (m *memProjects) ListForUser(_ context.Context, ownerID string) ([]domain.Project, error) {
	return nil, nil
}
func (m *memProjects) ListAll(_ context.Context) ([]domain.Project, error) { return nil, nil }
func (m *memProjects) HardDelete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.projects, id)
	return nil
}

type memStages struct {
	mu     sync.Mutex
	byID   map[string]domain.Stage
	nextID int
}

func newMemStages() *memStages { return &memStages{byID: map[string]domain.Stage{}} }

func (m *memStages) Create(_ context.Context, s domain.Stage) (domain.Stage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == "" {
		m.nextID++
		s.ID = "stage-" + itoa(m.nextID)
	}
	if s.VersionNumber == "" {
		s.VersionNumber = "1.0.0"
	}
	m.byID[s.ID] = s
	return s, nil
}
func (m *memStages) GetByID(_ context.Context, id string) (domain.Stage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	if !ok {
		return domain.Stage{}, domain.NewNotFound("Stage", id)
	}
	return s, nil
}
func (m *memStages) ListByProject(_ context.Context, projectID string) ([]domain.Stage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Stage
	for _, s := range m.byID {
		if s.ProjectID == projectID {
			out = append(out, s)
		}
	}
	return out, nil
}
func (m *memStages) UpdateLogic(_ context.Context, stageID, editedLogic string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.byID[stageID]
	s.EditedLogic = &editedLogic
	m.byID[stageID] = s
	return nil
}
func (m *memStages) MarkValidated(_ context.Context, stageID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.byID[stageID]
	s.IsValidated = true
	m.byID[stageID] = s
	return nil
}
func (m *memStages) MarkFinalized(_ context.Context, stageID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.byID[stageID]
	s.IsFinalized = true
	m.byID[stageID] = s
	return nil
}
func (m *memStages) DeleteProjectStages(_ context.Context, projectID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.byID {
		if s.ProjectID == projectID {
			delete(m.byID, id)
		}
	}
	return nil
}
func (m *memStages) UpdateVersionMetadata(_ context.Context, stageID, versionNumber, lastAction string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.byID[stageID]
	s.VersionNumber = versionNumber
	s.LastAction = &lastAction
	m.byID[stageID] = s
	return nil
}

type memCodes struct {
	mu      sync.Mutex
	byStage map[string]domain.GeneratedCode
	seq     int
}

func newMemCodes() *memCodes { return &memCodes{byStage: map[string]domain.GeneratedCode{}} }

func (m *memCodes) Create(_ context.Context, c domain.GeneratedCode) (domain.GeneratedCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	c.ID = "code-" + itoa(m.seq)
	m.byStage[c.StageID] = c
	return c, nil
}
func (m *memCodes) GetByStage(_ context.Context, stageID string) (domain.GeneratedCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byStage[stageID]
	if !ok {
		return domain.GeneratedCode{}, domain.NewNotFound("GeneratedCode", stageID)
	}
	return c, nil
}
func (m *memCodes) ListByProject(_ context.Context, projectID string) ([]domain.GeneratedCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.GeneratedCode
	for _, c := range m.byStage {
		if c.ProjectID == projectID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (m *memCodes) DeleteByStage(_ context.Context, stageID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byStage, stageID)
	return nil
}

type memVersions struct {
	mu      sync.Mutex
	entries []domain.VersionHistoryEntry
}

func (m *memVersions) Append(_ context.Context, e domain.VersionHistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}
func (m *memVersions) ListByStage(_ context.Context, stageID string) ([]domain.VersionHistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.VersionHistoryEntry
	for _, e := range m.entries {
		if e.StageID == stageID {
			out = append(out, e)
		}
	}
	return out, nil
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func newTestEngine(llm llmgateway.Client) (*Engine, *memStages, *memCodes, *memVersions) {
	stages := newMemStages()
	codes := newMemCodes()
	versions := &memVersions{}
	ledger := versionledger.New(versions)
	clockTick := 0
	now := func() time.Time {
		clockTick++
		return time.Unix(int64(1_700_000_000+clockTick), 0)
	}
	eng := New(newMemProjects(), stages, codes, nil, ledger, fakeRetriever{}, llm, safety.PerProject, now, nil)
	return eng, stages, codes, versions
}

func TestIngestLogic_TooShortInputIsRejected(t *testing.T) {
	eng, _, _, _ := newTestEngine(&llmgateway.FakeClient{})
	_, err := eng.IngestLogic(context.Background(), "proj-1", "too short")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInputInvalid)
}

func TestIngestLogic_ReplacesStagesOnSuccess(t *testing.T) {
	eng, stages, _, _ := newTestEngine(&llmgateway.FakeClient{Err: assertErr{}})
	text := longEnoughLogic()

	plan, err := eng.IngestLogic(context.Background(), "proj-1", text)
	require.NoError(t, err)
	assert.Len(t, plan.Stages, 2)
	assert.True(t, plan.Validation.Valid)

	stored, err := stages.ListByProject(context.Background(), "proj-1")
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestEditStageLogic_RecordsDiffAndBumpsPatch(t *testing.T) {
	eng, stages, _, versions := newTestEngine(&llmgateway.FakeClient{})
	stage, err := stages.Create(context.Background(), domain.Stage{ProjectID: "p1", OriginalLogic: "old text", VersionNumber: "1.0.0"})
	require.NoError(t, err)

	err = eng.EditStageLogic(context.Background(), stage.ID, "new text")
	require.NoError(t, err)

	entries, _ := versions.ListByStage(context.Background(), stage.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActionEditLogic, entries[0].Action)
	assert.Equal(t, "1.0.1", entries[0].VersionNumber)
	require.NotNil(t, entries[0].Diff)
	assert.Contains(t, *entries[0].Diff, "+new text")
}

func TestValidateStage_PassFlipsIsValidated(t *testing.T) {
	llm := &llmgateway.FakeClient{Response: "Status: PASS\n"}
	eng, stages, _, _ := newTestEngine(llm)
	stage, _ := stages.Create(context.Background(), domain.Stage{ProjectID: "p1", VersionNumber: "1.0.0"})

	result, err := eng.ValidateStage(context.Background(), stage.ID)
	require.NoError(t, err)
	assert.True(t, result.Valid)

	reloaded, _ := stages.GetByID(context.Background(), stage.ID)
	assert.True(t, reloaded.IsValidated)
	assert.Equal(t, "1.1.0", reloaded.VersionNumber)
}

func TestValidateStage_CriticalIssueLeavesStageUnvalidated(t *testing.T) {
	llm := &llmgateway.FakeClient{Response: "Status: PASS\nCATEGORIZED ISSUES:\n  [CRITICAL] Missing interlock\n"}
	eng, stages, _, _ := newTestEngine(llm)
	stage, _ := stages.Create(context.Background(), domain.Stage{ProjectID: "p1", VersionNumber: "1.0.0"})

	result, err := eng.ValidateStage(context.Background(), stage.ID)
	require.NoError(t, err)
	assert.False(t, result.Valid)

	reloaded, _ := stages.GetByID(context.Background(), stage.ID)
	assert.False(t, reloaded.IsValidated)
}

func TestFinalizeStage_FailsWithoutValidation(t *testing.T) {
	eng, stages, _, _ := newTestEngine(&llmgateway.FakeClient{})
	stage, _ := stages.Create(context.Background(), domain.Stage{ProjectID: "p1", VersionNumber: "1.0.0"})

	err := eng.FinalizeStage(context.Background(), stage.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotValidated)
}

func TestFinalizeStage_SucceedsAfterValidation(t *testing.T) {
	eng, stages, _, _ := newTestEngine(&llmgateway.FakeClient{})
	stage, _ := stages.Create(context.Background(), domain.Stage{ProjectID: "p1", VersionNumber: "1.0.0", IsValidated: true})

	err := eng.FinalizeStage(context.Background(), stage.ID)
	require.NoError(t, err)

	reloaded, _ := stages.GetByID(context.Background(), stage.ID)
	assert.True(t, reloaded.IsFinalized)
}

func TestGenerateProjectCode_RejectsWhenAnyStageUnvalidated(t *testing.T) {
	eng, stages, _, _ := newTestEngine(&llmgateway.FakeClient{Response: generatedDoc})
	validStage, _ := stages.Create(context.Background(), domain.Stage{ProjectID: "p1", VersionNumber: "1.0.0", IsValidated: true})
	_, _ = stages.Create(context.Background(), domain.Stage{ProjectID: "p1", VersionNumber: "1.0.0", IsValidated: false})

	_, err := eng.GenerateProjectCode(context.Background(), validStage.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStagesNotValidated)
}

func TestGenerateProjectCode_PersistsUnifiedGlobalsAcrossStages(t *testing.T) {
	eng, stages, codes, versions := newTestEngine(&llmgateway.FakeClient{Response: generatedDoc})
	s1, _ := stages.Create(context.Background(), domain.Stage{ProjectID: "p1", StageNumber: 1, VersionNumber: "1.0.0", IsValidated: true})
	s2, _ := stages.Create(context.Background(), domain.Stage{ProjectID: "p1", StageNumber: 2, VersionNumber: "1.0.0", IsValidated: true})

	result, err := eng.GenerateProjectCode(context.Background(), s1.ID)
	require.NoError(t, err)
	assert.Equal(t, s1.ID, result.StageID)

	code1, err := codes.GetByStage(context.Background(), s1.ID)
	require.NoError(t, err)
	code2, err := codes.GetByStage(context.Background(), s2.ID)
	require.NoError(t, err)
	assert.Equal(t, code1.GlobalLabels, code2.GlobalLabels)
	require.NotEmpty(t, code1.GlobalLabels)

	entries1, _ := versions.ListByStage(context.Background(), s1.ID)
	require.Len(t, entries1, 1)
	assert.Equal(t, domain.ActionGenerateCode, entries1[0].Action)
}

func TestGenerateProjectCode_AllOrNothingOnGenerationFailure(t *testing.T) {
	eng, stages, codes, versions := newTestEngine(&llmgateway.FakeClient{Err: assertErr{}})
	s1, _ := stages.Create(context.Background(), domain.Stage{ProjectID: "p1", StageNumber: 1, VersionNumber: "1.0.0", IsValidated: true})

	_, err := eng.GenerateProjectCode(context.Background(), s1.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)

	_, err = codes.GetByStage(context.Background(), s1.ID)
	assert.Error(t, err)

	entries, _ := versions.ListByStage(context.Background(), s1.ID)
	assert.Empty(t, entries)
}

func TestUpdateGeneratedCode_RecordsEditCodeEntry(t *testing.T) {
	eng, stages, codes, versions := newTestEngine(&llmgateway.FakeClient{})
	stage, _ := stages.Create(context.Background(), domain.Stage{ProjectID: "p1", VersionNumber: "1.0.0"})
	_, err := codes.Create(context.Background(), domain.GeneratedCode{StageID: stage.ID, ProjectID: "p1", ProgramBody: "OLD"})
	require.NoError(t, err)

	saved, err := eng.UpdateGeneratedCode(context.Background(), stage.ID, "NEW", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "NEW", saved.ProgramBody)

	entries, _ := versions.ListByStage(context.Background(), stage.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActionEditCode, entries[0].Action)
}

func TestSafetyCheck_RecordsSafetyCheckEntry(t *testing.T) {
	llm := &llmgateway.FakeClient{Response: "Overall Status: SAFE\nRisk Level: LOW\n"}
	eng, stages, codes, versions := newTestEngine(llm)
	stage, _ := stages.Create(context.Background(), domain.Stage{ProjectID: "p1", VersionNumber: "1.0.0"})
	_, err := codes.Create(context.Background(), domain.GeneratedCode{StageID: stage.ID, ProjectID: "p1", ProgramBody: "X := TRUE;"})
	require.NoError(t, err)

	result, err := eng.SafetyCheck(context.Background(), stage.ID)
	require.NoError(t, err)
	assert.Equal(t, "SAFE", result.OverallStatus)

	entries, _ := versions.ListByStage(context.Background(), stage.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActionSafetyCheck, entries[0].Action)
}

func TestStageVersionHistory_OrderedNewestFirst(t *testing.T) {
	eng, stages, _, _ := newTestEngine(&llmgateway.FakeClient{})
	stage, _ := stages.Create(context.Background(), domain.Stage{ProjectID: "p1", VersionNumber: "1.0.0"})
	require.NoError(t, eng.EditStageLogic(context.Background(), stage.ID, "a"))
	require.NoError(t, eng.EditStageLogic(context.Background(), stage.ID, "b"))

	history, err := eng.StageVersionHistory(context.Background(), stage.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "1.0.2", history[0].VersionNumber)
	assert.Equal(t, "1.0.1", history[1].VersionNumber)
}

type assertErr struct{}

func (assertErr) Error() string { return "llm unavailable" }

func longEnoughLogic() string {
	words := ""
	for i := 0; i < 60; i++ {
		words += "word "
	}
	return words
}
