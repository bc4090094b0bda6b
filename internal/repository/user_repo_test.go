package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/amity-dating/amity/internal/db"
	"github.com/amity-dating/amity/internal/repository"
)

// setup in-memory DB
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return database
}

func TestFindByEmailNormalizes(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewUserRepository(dbase)

	user := db.User{UUID: "u-1", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, dbase.Create(&user).Error)

	found, err := repo.FindByEmail(ctx, "  Alice@Example.COM ")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)

	missing, err := repo.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPutAndHasRelation(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewUserRepository(dbase)

	require.NoError(t, repo.PutRelation(ctx, 1, 2, db.RelationBlocked))
	// replay must not fail
	require.NoError(t, repo.PutRelation(ctx, 1, 2, db.RelationBlocked))

	has, err := repo.HasRelation(ctx, 1, 2, db.RelationBlocked)
	require.NoError(t, err)
	assert.True(t, has)

	// direction matters
	has, err = repo.HasRelation(ctx, 2, 1, db.RelationBlocked)
	require.NoError(t, err)
	assert.False(t, has)

	// kind matters
	has, err = repo.HasRelation(ctx, 1, 2, db.RelationLiked)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestCountRelationsTo(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewUserRepository(dbase)

	require.NoError(t, repo.PutRelation(ctx, 1, 9, db.RelationReported))
	require.NoError(t, repo.PutRelation(ctx, 2, 9, db.RelationReported))
	require.NoError(t, repo.PutRelation(ctx, 3, 9, db.RelationBlocked))

	count, err := repo.CountRelationsTo(ctx, 9, db.RelationReported)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGetForProjectionPreloads(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewUserRepository(dbase)

	picUUID := "pic-uuid"
	user := db.User{
		UUID:         "u-2",
		Email:        "bob@example.com",
		PasswordHash: "x",
		Interests: []db.UserInterest{
			{Text: "hiking"},
			{Text: "jazz"},
		},
		Prompts: []db.UserPrompt{
			{Question: "Two truths and a lie", Answer: "..."},
		},
		VerificationPicture: &db.VerificationPicture{
			UUID:    &picUUID,
			HasData: true,
			Votes: []db.VerificationVote{
				{VoterID: 5, Approve: true},
				{VoterID: 6, Approve: false},
			},
		},
	}
	require.NoError(t, dbase.Create(&user).Error)

	loaded, err := repo.GetForProjection(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	require.Len(t, loaded.Interests, 2)
	assert.Equal(t, "hiking", loaded.Interests[0].Text)
	require.Len(t, loaded.Prompts, 1)
	require.NotNil(t, loaded.VerificationPicture)
	assert.Equal(t, []uint64{5}, loaded.VerificationPicture.YesVoters())
	assert.Equal(t, []uint64{6}, loaded.VerificationPicture.NoVoters())
}
