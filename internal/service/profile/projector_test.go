package profile_test

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/amity-dating/amity/internal/db"
	"github.com/amity-dating/amity/internal/idcodec"
	"github.com/amity-dating/amity/internal/matching"
	"github.com/amity-dating/amity/internal/repository"
	"github.com/amity-dating/amity/internal/service/profile"
)

var fixedNow = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

type fakeMedia struct{}

func (fakeMedia) ProfilePictureURL(uuid string) string { return "http://test/img/" + uuid }
func (fakeMedia) AudioURL(uuid string) string          { return "http://test/audio/" + uuid }
func (fakeMedia) VerificationPictureURL(_ context.Context, uuid string) (string, error) {
	return "http://test/verify/" + uuid, nil
}

type projectorEnv struct {
	db        *gorm.DB
	repo      *repository.UserRepository
	codec     *idcodec.Codec
	projector *profile.Projector
}

func setupProjector(t *testing.T) *projectorEnv {
	t.Helper()

	dbase, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(dbase))

	repo := repository.NewUserRepository(dbase)

	codec, err := idcodec.New("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	projector := profile.NewProjector(repo, fakeMedia{}, matching.NewPolicy(), codec, log).
		WithNow(func() time.Time { return fixedNow })

	return &projectorEnv{db: dbase, repo: repo, codec: codec, projector: projector}
}

func (e *projectorEnv) create(t *testing.T, user *db.User) *db.User {
	t.Helper()
	require.NoError(t, e.db.Create(user).Error)
	loaded, err := e.repo.GetForProjection(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	return loaded
}

func (e *projectorEnv) relate(t *testing.T, userID, targetID uint64, kind string) {
	t.Helper()
	require.NoError(t, e.repo.PutRelation(context.Background(), userID, targetID, kind))
}

func dobFor(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

// seedAlice is the default viewer: female, imperial units, verified picture
// on file, zodiac enabled.
func (e *projectorEnv) seedAlice(t *testing.T) *db.User {
	lat, lon := 0.0, 0.0
	picUUID := "alice-verify"
	return e.create(t, &db.User{
		UUID:              "alice-uuid",
		Email:             "alice@example.com",
		PasswordHash:      "x",
		Confirmed:         true,
		FirstName:         "Alice",
		DateOfBirth:       dobFor(1998, time.March, 10),
		Gender:            "female",
		Country:           "US",
		Units:             db.UnitImperial,
		ShowZodiac:        true,
		LocationLatitude:  &lat,
		LocationLongitude: &lon,
		LastActiveAt:      fixedNow.Add(-time.Hour),
		PreferredGenders:  "male",
		PreferredMinAge:   18,
		PreferredMaxAge:   40,
		Intention:         "date",
		Interests: []db.UserInterest{
			{Text: "jazz"}, {Text: "cooking"},
		},
		VerificationPicture: &db.VerificationPicture{
			UUID:    &picUUID,
			HasData: true,
			Votes: []db.VerificationVote{
				{VoterID: 101, Approve: true},
			},
		},
	})
}

// seedBob is the default subject: male, ~100.5 km south of alice, pending
// verification picture with a healthy approval record.
func (e *projectorEnv) seedBob(t *testing.T, aliceID uint64) *db.User {
	lat := (100.5 / 6371.0) * 180 / math.Pi
	lon := 0.0
	picUUID := "bob-verify"
	profilePic := "bob-pic"
	audio := "bob-audio"
	return e.create(t, &db.User{
		UUID:               "bob-uuid",
		Email:              "bob@example.com",
		PasswordHash:       "x",
		Confirmed:          true,
		FirstName:          "Bob",
		DateOfBirth:        dobFor(2000, time.June, 15),
		Gender:             "male",
		Country:            "DE",
		Units:              db.UnitMetric,
		ShowZodiac:         true,
		Description:        "hello",
		LocationLatitude:   &lat,
		LocationLongitude:  &lon,
		LastActiveAt:       fixedNow.Add(-2 * time.Minute),
		ProfilePictureUUID: &profilePic,
		AudioUUID:          &audio,
		PreferredGenders:   "female",
		PreferredMinAge:    16,
		PreferredMaxAge:    35,
		Intention:          "date",
		Interests: []db.UserInterest{
			{Text: "jazz"}, {Text: "hiking"},
		},
		Prompts: []db.UserPrompt{
			{Question: "Two truths and a lie", Answer: "I own a tuba"},
		},
		VerificationPicture: &db.VerificationPicture{
			UUID:    &picUUID,
			HasData: true,
			Votes: []db.VerificationVote{
				{VoterID: aliceID, Approve: true},
				{VoterID: 102, Approve: true},
				{VoterID: 103, Approve: true},
				{VoterID: 104, Approve: true},
				{VoterID: 105, Approve: true},
				{VoterID: 106, Approve: true},
				{VoterID: 107, Approve: false},
			},
		},
	})
}

func TestProjectOtherUser(t *testing.T) {
	ctx := context.Background()
	env := setupProjector(t)

	alice := env.seedAlice(t)
	bob := env.seedBob(t, alice.ID)

	env.relate(t, alice.ID, bob.ID, db.RelationLiked)
	env.relate(t, alice.ID, bob.ID, db.RelationReported)
	env.relate(t, bob.ID, alice.ID, db.RelationLiked)

	out, err := env.projector.Project(ctx, bob, alice, false)
	require.NoError(t, err)

	// opaque identifier resolves back to the internal id
	decoded, err := env.codec.Decode(out.PublicID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, decoded)
	assert.Equal(t, "bob-uuid", out.UUID)

	assert.Equal(t, "Bob", out.FirstName)
	assert.Equal(t, 25, out.Age)
	assert.Equal(t, "gemini", out.Zodiac)
	assert.Equal(t, "🇩🇪", out.Country)

	// stated floor 16, but bob is of legal age
	assert.Equal(t, 18, out.PreferredMinAge)
	assert.Equal(t, 35, out.PreferredMaxAge)

	assert.Equal(t, []string{"jazz", "hiking"}, out.Interests)
	assert.Equal(t, []string{"jazz"}, out.CommonInterests)

	assert.Equal(t, "http://test/img/bob-pic", out.ProfilePictureURL)
	assert.True(t, out.HasAudio)
	assert.Equal(t, "http://test/audio/bob-audio", out.AudioURL)

	assert.True(t, out.LikedByCurrentUser)
	assert.True(t, out.LikesCurrentUser)
	assert.True(t, out.ReportedByCurrentUser)
	assert.False(t, out.BlockedByCurrentUser)
	assert.False(t, out.HiddenByCurrentUser)
	assert.Equal(t, int64(1), out.NumReports)
	assert.Equal(t, int64(0), out.NumBlockedBy)

	// alice uses imperial units: floor(100.5 km * 0.6214)
	if assert.NotNil(t, out.Distance) {
		assert.Equal(t, 62, *out.Distance)
	}

	assert.True(t, out.Compatible)
	assert.Equal(t, 1, out.LastActiveState)

	// never leaked to other viewers
	assert.Empty(t, out.Email)
	assert.Nil(t, out.LocationLatitude)
	assert.Nil(t, out.LocationLongitude)

	// alice has her own verification picture, so she sees the tallies
	v := out.Verification
	assert.True(t, v.HasPicture)
	assert.Equal(t, "http://test/verify/bob-verify", v.PendingURL)
	assert.Equal(t, 6, v.YesVotes)
	assert.Equal(t, 1, v.NoVotes)
	assert.True(t, v.VerifiedByUsers)
	assert.False(t, v.VerifiedByAdmin)
	assert.True(t, v.VotedByCurrentUser)
	assert.Equal(t, "bob-verify", v.UUID)
}

func TestProjectSelf(t *testing.T) {
	ctx := context.Background()
	env := setupProjector(t)

	alice := env.seedAlice(t)
	bob := env.seedBob(t, alice.ID)

	// relations exist, but a self-projection must not consult them
	env.relate(t, alice.ID, bob.ID, db.RelationLiked)

	out, err := env.projector.Project(ctx, alice, alice, false)
	require.NoError(t, err)

	// viewer-only fields present
	assert.Equal(t, "alice@example.com", out.Email)
	require.NotNil(t, out.LocationLatitude)
	require.NotNil(t, out.LocationLongitude)

	// viewer-relative fields stay at defaults
	assert.False(t, out.BlockedByCurrentUser)
	assert.False(t, out.ReportedByCurrentUser)
	assert.False(t, out.LikesCurrentUser)
	assert.False(t, out.LikedByCurrentUser)
	assert.False(t, out.HiddenByCurrentUser)
	assert.Empty(t, out.CommonInterests)
	assert.Nil(t, out.Distance)

	// identifier and compatibility are still computed
	decoded, err := env.codec.Decode(out.PublicID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, decoded)
	// alice prefers men and is a woman herself, so no self-match
	assert.False(t, out.Compatible)

	// self never gets the detailed verification branch
	v := out.Verification
	assert.True(t, v.HasPicture)
	assert.NotEmpty(t, v.PendingURL)
	assert.Equal(t, 0, v.YesVotes)
	assert.False(t, v.VerifiedByUsers)
	assert.False(t, v.VotedByCurrentUser)
	assert.Empty(t, v.UUID)
}

func TestAdminViewerSeesSentinelDistanceAndTallies(t *testing.T) {
	ctx := context.Background()
	env := setupProjector(t)

	alice := env.seedAlice(t)
	bob := env.seedBob(t, alice.ID)

	lat, lon := 10.0, 10.0
	admin := env.create(t, &db.User{
		UUID:              "admin-uuid",
		Email:             "admin@example.com",
		PasswordHash:      "x",
		Admin:             true,
		Confirmed:         true,
		DateOfBirth:       dobFor(1990, time.January, 1),
		Gender:            "female",
		PreferredGenders:  "male",
		PreferredMinAge:   18,
		PreferredMaxAge:   99,
		Intention:         "date",
		LocationLatitude:  &lat,
		LocationLongitude: &lon,
	})

	out, err := env.projector.Project(ctx, bob, admin, false)
	require.NoError(t, err)

	if assert.NotNil(t, out.Distance) {
		assert.Equal(t, 99999, *out.Distance)
	}

	// admins see tallies without a verification picture of their own
	assert.Equal(t, 6, out.Verification.YesVotes)
	assert.True(t, out.Verification.VerifiedByUsers)
}

func TestAdminSubjectActivitySuppressed(t *testing.T) {
	ctx := context.Background()
	env := setupProjector(t)

	alice := env.seedAlice(t)
	adminSubject := env.create(t, &db.User{
		UUID:         "dave-uuid",
		Email:        "dave@example.com",
		PasswordHash: "x",
		Admin:        true,
		Confirmed:    true,
		Gender:       "male",
		LastActiveAt: fixedNow.Add(-time.Minute),
	})

	out, err := env.projector.Project(ctx, adminSubject, alice, false)
	require.NoError(t, err)

	assert.Equal(t, profile.DefaultActiveState, out.LastActiveState)
}

func TestZodiacRequiresMutualConsent(t *testing.T) {
	ctx := context.Background()
	env := setupProjector(t)

	alice := env.seedAlice(t)
	bob := env.seedBob(t, alice.ID)

	t.Run("viewer opted out", func(t *testing.T) {
		require.NoError(t, env.db.Model(&db.User{}).Where("id = ?", alice.ID).Update("show_zodiac", false).Error)
		viewer, err := env.repo.GetForProjection(ctx, alice.ID)
		require.NoError(t, err)

		out, err := env.projector.Project(ctx, bob, viewer, false)
		require.NoError(t, err)
		assert.Empty(t, out.Zodiac)
		require.NoError(t, env.db.Model(&db.User{}).Where("id = ?", alice.ID).Update("show_zodiac", true).Error)
	})

	t.Run("subject opted out", func(t *testing.T) {
		require.NoError(t, env.db.Model(&db.User{}).Where("id = ?", bob.ID).Update("show_zodiac", false).Error)
		subject, err := env.repo.GetForProjection(ctx, bob.ID)
		require.NoError(t, err)

		out, err := env.projector.Project(ctx, subject, alice, false)
		require.NoError(t, err)
		assert.Empty(t, out.Zodiac)
		assert.False(t, out.ShowZodiac)
	})
}

func TestUnverifiedViewerSeesNoTallies(t *testing.T) {
	ctx := context.Background()
	env := setupProjector(t)

	alice := env.seedAlice(t)
	bob := env.seedBob(t, alice.ID)

	eve := env.create(t, &db.User{
		UUID:         "eve-uuid",
		Email:        "eve@example.com",
		PasswordHash: "x",
		Confirmed:    true,
		Gender:       "female",
	})

	out, err := env.projector.Project(ctx, bob, eve, false)
	require.NoError(t, err)

	v := out.Verification
	// existence and the pending URL are public
	assert.True(t, v.HasPicture)
	assert.NotEmpty(t, v.PendingURL)
	// everything else is withheld
	assert.Equal(t, 0, v.YesVotes)
	assert.Equal(t, 0, v.NoVotes)
	assert.False(t, v.VerifiedByUsers)
	assert.False(t, v.VotedByCurrentUser)
	assert.Empty(t, v.UUID)
}

func TestMissingBirthDate(t *testing.T) {
	ctx := context.Background()
	env := setupProjector(t)

	alice := env.seedAlice(t)
	noDOB := env.create(t, &db.User{
		UUID:             "nodob-uuid",
		Email:            "nodob@example.com",
		PasswordHash:     "x",
		Confirmed:        true,
		Gender:           "male",
		ShowZodiac:       true,
		PreferredGenders: "female",
		PreferredMinAge:  18,
		PreferredMaxAge:  99,
		Intention:        "date",
	})

	out, err := env.projector.Project(ctx, noDOB, alice, false)
	require.NoError(t, err)

	assert.Equal(t, 0, out.Age)
	assert.Empty(t, out.Zodiac)
	// the mutual age check cannot pass without an age
	assert.False(t, out.Compatible)
}
