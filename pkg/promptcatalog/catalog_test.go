package promptcatalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveThenLoad(t *testing.T) {
	cat := New(t.TempDir())

	require.NoError(t, cat.Save("stage_segregator", "current", "segregate the logic"))

	text, err := cat.Load("stage_segregator", "current")
	require.NoError(t, err)
	assert.Equal(t, "segregate the logic", text)
}

func TestLoadDefaultsToCurrent(t *testing.T) {
	cat := New(t.TempDir())
	require.NoError(t, cat.Save("code_generator", "current", "generate code"))

	text, err := cat.Load("code_generator", "")
	require.NoError(t, err)
	assert.Equal(t, "generate code", text)
}

func TestLoadMissingReturnsNotFound(t *testing.T) {
	cat := New(t.TempDir())

	_, err := cat.Load("missing_agent", "current")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	var nfe *NotFoundError
	require.True(t, errors.As(err, &nfe))
	assert.Equal(t, "missing_agent", nfe.Agent)
}

func TestLoadSpecificVersion(t *testing.T) {
	cat := New(t.TempDir())
	require.NoError(t, cat.Save("stage_validator", "v2", "validate v2"))

	text, err := cat.Load("stage_validator", "v2")
	require.NoError(t, err)
	assert.Equal(t, "validate v2", text)

	_, err = cat.Load("stage_validator", "current")
	require.Error(t, err)
}
