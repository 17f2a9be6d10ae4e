package codeparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plcforge/plcforge/internal/domain"
)

const sample = `==============================
1) GLOBAL LABEL TABLE
==============================
Label Name | Data Type | Class | Device Name | Initial Value | Constant | English | Remark
Start_Button | Bit | VAR_GLOBAL | X0 | FALSE | No | Start button |
Stage1_Active | Bit | VAR_GLOBAL | M100 | FALSE | No | Stage active |

==============================
2) PROGRAM BLOCKS
==============================
----------------------
PROGRAM BLOCK
Stage: 1 - Idle
Program Name: IDLE_PRG
Execution Type: Initial
----------------------

LOCAL LABEL TABLE:
Label Name | Data Type | Class | Initial Value | Constant | English
State_Flag | Bit | VAR | FALSE | No | State

STRUCTURED TEXT CODE:
IF Start_Button THEN
    Stage1_Active := TRUE;
END_IF;

==============================
3) FUNCTIONS
==============================
----------------------
FUNCTION
Stage: 1 - Idle
Function Name: CheckReady
With EN or Without EN: With EN
Result Type: BOOL
----------------------

LOCAL LABEL TABLE:
Label Name | Data Type | Class | Initial Value | Constant | English
Ready_Flag | Bit | VAR_OUTPUT | FALSE | No | Ready

STRUCTURED TEXT CODE:
CheckReady := Ready_Flag;
`

func TestParse_FullDocument(t *testing.T) {
	gc := Parse(sample, 1)

	require.Len(t, gc.GlobalLabels, 2)
	assert.Equal(t, "Start_Button", gc.GlobalLabels[0].Name)
	assert.Equal(t, "X0", gc.GlobalLabels[0].Device)
	assert.Equal(t, "Start button", gc.GlobalLabels[0].Comment)
	assert.False(t, gc.GlobalLabels[0].Constant)

	require.Len(t, gc.ProgramBlocks, 1)
	pb := gc.ProgramBlocks[0]
	assert.Equal(t, "IDLE_PRG", pb.Name)
	assert.Equal(t, domain.ExecInitial, pb.ExecutionType)
	require.Len(t, pb.LocalLabels, 1)
	assert.Equal(t, "State_Flag", pb.LocalLabels[0].Name)
	assert.Equal(t, "State", pb.LocalLabels[0].Comment)
	assert.Contains(t, pb.Code, "Stage1_Active := TRUE;")
	assert.NotContains(t, pb.Code, "STRUCTURED TEXT CODE")
	assert.NotContains(t, pb.Code, "Label Name")

	require.Len(t, gc.Functions, 1)
	fn := gc.Functions[0]
	assert.Equal(t, "CheckReady", fn.Name)
	assert.Equal(t, "BOOL", fn.ResultType)
	require.NotNil(t, fn.WithEN)
	assert.True(t, *fn.WithEN)
	assert.Contains(t, fn.Code, "CheckReady := Ready_Flag;")

	// legacy mirror
	assert.Equal(t, gc.ProgramBlocks[0].Code, gc.ProgramBody)
	assert.Equal(t, gc.ProgramBlocks[0].LocalLabels, gc.LocalLabels)
}

func TestParse_NoBlocksProducesEmptyNotError(t *testing.T) {
	gc := Parse("gibberish with no recognizable sections", 1)
	assert.Empty(t, gc.ProgramBlocks)
	assert.Empty(t, gc.GlobalLabels)
	assert.Empty(t, gc.ProgramBody)
}

func TestParse_HeaderRowsNeverBecomeLabels(t *testing.T) {
	gc := Parse(sample, 1)
	for _, l := range gc.GlobalLabels {
		assert.NotEqual(t, "Label Name", l.Name)
	}
}

func TestParse_MultipleProgramBlocks(t *testing.T) {
	text := `PROGRAM BLOCK
Program Name: A
Execution Type: Scan
STRUCTURED TEXT CODE:
X := 1;

PROGRAM BLOCK
Program Name: B
Execution Type: Scan
STRUCTURED TEXT CODE:
Y := 2;
`
	gc := Parse(text, 2)
	require.Len(t, gc.ProgramBlocks, 2)
	assert.Equal(t, "A", gc.ProgramBlocks[0].Name)
	assert.Equal(t, "B", gc.ProgramBlocks[1].Name)
	assert.Equal(t, 2, gc.ProgramBlocks[0].Stage)
	assert.Contains(t, gc.ProgramBlocks[0].Code, "X := 1;")
	assert.Contains(t, gc.ProgramBlocks[1].Code, "Y := 2;")
}

func TestParse_FunctionBlockWithEnAndType(t *testing.T) {
	text := `FUNCTION BLOCK
Function Block Name: Debounce
Function Block Type: Subroutine Type
With EN or Without EN: Without EN
STRUCTURED TEXT CODE:
Out := In;
`
	gc := Parse(text, 1)
	require.Len(t, gc.FunctionBlocks, 1)
	fb := gc.FunctionBlocks[0]
	assert.Equal(t, "Debounce", fb.Name)
	assert.Equal(t, "Subroutine Type", fb.FBType)
	require.NotNil(t, fb.WithEN)
	assert.False(t, *fb.WithEN)
}

func TestParseLabelTable_SkipsBadFirstCellsAndPlaceholders(t *testing.T) {
	table := `Label Name | Data Type | Class | Initial Value | Constant | English
- | Bit | VAR | FALSE | No | none
N/A | Bit | VAR | FALSE | No | none
Valid | Bit | VAR | FALSE | Yes | ok
`
	labels := parseLabelTable(table)
	require.Len(t, labels, 1)
	assert.Equal(t, "Valid", labels[0].Name)
	assert.True(t, labels[0].Constant)
	assert.Equal(t, "ok", labels[0].Comment)
}
