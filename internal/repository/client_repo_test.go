package repository

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy/clientms/internal/db"
	"github.com/andy/clientms/internal/domain"
)

func newTestRepo(t *testing.T) (*ClientRepo, *db.DB) {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "clients.db"), "test-key")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, database.EnsureSchema(context.Background()))
	return NewClientRepo(database), database
}

func sampleClient(first, last, clientType string) *domain.Client {
	return domain.NewClient(first, last, "100 King St W", "M5X 1A9", "416-555-0123", clientType)
}

func TestCreate_AssignsIDAndRoundTrips(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	client := sampleClient("Grace", "Hopper", "C")
	id, err := repo.Create(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, id, client.ID)

	found, err := repo.Find(ctx, domain.SearchByID, strconv.FormatInt(id, 10))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, client, found[0])
}

func TestCreate_SequentialIDs(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		id, err := repo.Create(ctx, sampleClient("A", "B", "R"))
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
}

func TestCreate_RejectsInvalidClient(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	client := sampleClient("Grace", "Hopper", "X")
	_, err := repo.Create(ctx, client)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "clientType", ve.Field)
	assert.Zero(t, client.ID)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreate_RejectsPresetID(t *testing.T) {
	repo, _ := newTestRepo(t)

	client := sampleClient("Grace", "Hopper", "C")
	client.ID = 42
	_, err := repo.Create(context.Background(), client)
	assert.ErrorIs(t, err, domain.ErrIDAssigned)
	assert.Equal(t, int64(42), client.ID)
}

func TestFind_ByLastNameAndType(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	r1 := sampleClient("Ann", "Smith", "R")
	c1 := sampleClient("Bob", "Jones", "C")
	r2 := sampleClient("Cat", "Smith", "R")
	for _, c := range []*domain.Client{r1, c1, r2} {
		_, err := repo.Create(ctx, c)
		require.NoError(t, err)
	}

	residential, err := repo.Find(ctx, domain.SearchByClientType, "R")
	require.NoError(t, err)
	require.Len(t, residential, 2)
	assert.Equal(t, r1.ID, residential[0].ID)
	assert.Equal(t, r2.ID, residential[1].ID)
	for _, c := range residential {
		assert.Equal(t, domain.ClientTypeResidential, c.Type)
	}

	smiths, err := repo.Find(ctx, domain.SearchByLastName, "Smith")
	require.NoError(t, err)
	assert.Len(t, smiths, 2)

	// Exact match only
	none, err := repo.Find(ctx, domain.SearchByLastName, "smith")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestFind_NoMatchesIsEmptyNotError(t *testing.T) {
	repo, _ := newTestRepo(t)

	found, err := repo.Find(context.Background(), domain.SearchByID, "77")
	require.NoError(t, err)
	assert.NotNil(t, found)
	assert.Empty(t, found)
}

func TestFind_UnsupportedField(t *testing.T) {
	repo, _ := newTestRepo(t)

	for _, field := range []domain.SearchField{0, 42} {
		found, err := repo.Find(context.Background(), field, "x")
		assert.ErrorIs(t, err, domain.ErrUnsupportedSearchField)
		assert.Empty(t, found)
	}
}

func TestUpdate_OverwritesFields(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	original := sampleClient("Grace", "Hopper", "C")
	id, err := repo.Create(ctx, original)
	require.NoError(t, err)

	changed := domain.NewClient("Grace", "Murray", "1 Navy Yard", "B3K 5X5", "902-555-0000", "R")
	require.NoError(t, repo.Update(ctx, id, changed))
	assert.Equal(t, id, changed.ID)

	stored, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, changed, stored)
}

func TestUpdate_InvalidDataLeavesRecordUnchanged(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	original := sampleClient("Grace", "Hopper", "C")
	id, err := repo.Create(ctx, original)
	require.NoError(t, err)

	bad := sampleClient("", "Changed", "R")
	err = repo.Update(ctx, id, bad)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "firstName", ve.Field)

	stored, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Grace", stored.FirstName)
	assert.Equal(t, "Hopper", stored.LastName)
	assert.Equal(t, domain.ClientTypeCommercial, stored.Type)
}

func TestUpdate_MissingID(t *testing.T) {
	repo, _ := newTestRepo(t)

	err := repo.Update(context.Background(), 999, sampleClient("A", "B", "C"))
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
}

func TestDelete_ThenFindIsEmpty(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, sampleClient("Grace", "Hopper", "C"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, id))

	found, err := repo.Find(ctx, domain.SearchByID, strconv.FormatInt(id, 10))
	require.NoError(t, err)
	assert.Empty(t, found)

	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
}

func TestDelete_MissingID(t *testing.T) {
	repo, _ := newTestRepo(t)

	err := repo.Delete(context.Background(), 12)
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
}

func TestDeletedIDsAreNotReused(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, sampleClient("A", "B", "C"))
	require.NoError(t, err)
	id2, err := repo.Create(ctx, sampleClient("C", "D", "R"))
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, id2))

	id3, err := repo.Create(ctx, sampleClient("E", "F", "R"))
	require.NoError(t, err)
	assert.Greater(t, id3, id2)
}

func TestListCountDeleteAll(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	for _, last := range []string{"Zed", "Amy", "Kim"} {
		_, err := repo.Create(ctx, sampleClient("X", last, "C"))
		require.NoError(t, err)
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Zed", all[0].LastName)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	deleted, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStorageErrorOnClosedDatabase(t *testing.T) {
	repo, database := newTestRepo(t)
	require.NoError(t, database.Close())
	ctx := context.Background()

	_, err := repo.Create(ctx, sampleClient("A", "B", "C"))
	var se *domain.StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "create client", se.Op)

	_, err = repo.Find(ctx, domain.SearchByLastName, "B")
	assert.ErrorAs(t, err, &se)

	err = repo.Delete(ctx, 1)
	assert.ErrorAs(t, err, &se)
}
