package labelmerge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plcforge/plcforge/internal/domain"
)

func TestMerge_UnionByDeviceIdentity(t *testing.T) {
	existing := []domain.Label{
		{Name: "Start_Button", Device: "X0"},
	}
	next := []domain.Label{
		{Name: "Start_Button_Dup", Device: "X0"}, // same device, dropped
		{Name: "Stop_Button", Device: "X1"},
	}

	merged := Merge(existing, next)
	require.Len(t, merged, 2)
	assert.Equal(t, "Start_Button", merged[0].Name)
	assert.Equal(t, "Stop_Button", merged[1].Name)
}

func TestMerge_FallsBackToNameWhenNoDevice(t *testing.T) {
	existing := []domain.Label{{Name: "Internal_Flag"}}
	next := []domain.Label{{Name: "Internal_Flag"}, {Name: "Other_Flag"}}

	merged := Merge(existing, next)
	require.Len(t, merged, 2)
	assert.Equal(t, "Internal_Flag", merged[0].Name)
	assert.Equal(t, "Other_Flag", merged[1].Name)
}

func TestMerge_PreservesFirstSeenOrder(t *testing.T) {
	existing := []domain.Label{{Name: "A", Device: "X0"}, {Name: "B", Device: "X1"}}
	next := []domain.Label{{Name: "C", Device: "X2"}}

	merged := Merge(existing, next)
	require.Len(t, merged, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{merged[0].Name, merged[1].Name, merged[2].Name})
}

func TestMergeAll_FoldsAcrossStagesInOrder(t *testing.T) {
	perStage := [][]domain.Label{
		{{Name: "A", Device: "X0"}},
		{{Name: "A", Device: "X0"}, {Name: "B", Device: "X1"}},
		{{Name: "C", Device: "X2"}},
	}

	unified := MergeAll(perStage)
	require.Len(t, unified, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{unified[0].Name, unified[1].Name, unified[2].Name})
}
