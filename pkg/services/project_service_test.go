package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plcforge/plcforge/internal/domain"
	testdb "github.com/plcforge/plcforge/test/database"
)

func TestProjectService_CreateAndGet(t *testing.T) {
	client := testdb.NewTestClient(t)
	projects := NewProjectService(client.Client)
	ctx := context.Background()

	created, err := projects.Create(ctx, domain.Project{
		Name:        "Bottling Line 3",
		Description: "Fill, cap, label",
		OwnerID:     "engineer-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.ProjectActive, created.Status)

	fetched, err := projects.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, fetched.Name)
	assert.Equal(t, created.OwnerID, fetched.OwnerID)
}

func TestProjectService_Create_RequiresNameAndOwner(t *testing.T) {
	client := testdb.NewTestClient(t)
	projects := NewProjectService(client.Client)
	ctx := context.Background()

	_, err := projects.Create(ctx, domain.Project{OwnerID: "engineer-1"})
	assert.Error(t, err)

	_, err = projects.Create(ctx, domain.Project{Name: "No Owner"})
	assert.Error(t, err)
}

func TestProjectService_ListForUser_ExcludesDeleted(t *testing.T) {
	client := testdb.NewTestClient(t)
	projects := NewProjectService(client.Client)
	ctx := context.Background()

	p1, err := projects.Create(ctx, domain.Project{Name: "Line A", OwnerID: "engineer-2"})
	require.NoError(t, err)
	_, err = projects.Create(ctx, domain.Project{Name: "Line B", OwnerID: "engineer-2"})
	require.NoError(t, err)

	require.NoError(t, projects.HardDelete(ctx, p1.ID))

	list, err := projects.ListForUser(ctx, "engineer-2")
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "Line B", list[0].Name)
}

func TestProjectService_GetByID_NotFound(t *testing.T) {
	client := testdb.NewTestClient(t)
	projects := NewProjectService(client.Client)
	ctx := context.Background()

	_, err := projects.GetByID(ctx, "does-not-exist")
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
