package db

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var seedInterestPool = []string{
	"hiking", "jazz", "cooking", "climbing", "cinema",
	"board games", "travel", "yoga", "photography", "running",
}

// SeedTestData resets the database and populates it with demo users,
// relations and verification votes.
//
// Behavior:
//  1. Clears all domain tables.
//  2. Creates 20 users (10 male, 10 female, first one an admin) with hashed
//     passwords, interests and preferences.
//  3. Generates likes/blocks/hides/reports and verification votes.
//
// Compatible with both MySQL and SQLite.
func SeedTestData(db *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, table := range []string{
		"verification_votes", "verification_pictures", "user_relations",
		"user_prompts", "user_interests", "users",
	} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	log.Println("Cleared existing data")

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	for i := 1; i <= 20; i++ {
		gender, preferred := "male", "female"
		if i > 10 {
			gender, preferred = "female", "male"
		}

		lat := 48.1 + r.Float64()
		lon := 11.5 + r.Float64()
		dob := time.Date(1980+r.Intn(25), time.Month(1+r.Intn(12)), 1+r.Intn(28), 0, 0, 0, 0, time.UTC)
		picUUID := uuid.NewString()

		user := User{
			UUID:              uuid.NewString(),
			Email:             fmt.Sprintf("user%d@example.com", i),
			PasswordHash:      string(hash),
			Confirmed:         true,
			Admin:             i == 1,
			FirstName:         fmt.Sprintf("User%d", i),
			DateOfBirth:       &dob,
			Gender:            gender,
			Country:           "DE",
			Units:             i % 2,
			ShowZodiac:        i%3 != 0,
			Description:       "Hi, I seeded myself.",
			LocationLatitude:  &lat,
			LocationLongitude: &lon,
			LastActiveAt:      time.Now().Add(-time.Duration(r.Intn(5000)) * time.Minute),
			PreferredGenders:  preferred,
			PreferredMinAge:   18 + r.Intn(5),
			PreferredMaxAge:   35 + r.Intn(20),
			Intention:         "date",
			Interests: []UserInterest{
				{Text: seedInterestPool[i%len(seedInterestPool)]},
				{Text: seedInterestPool[(i+3)%len(seedInterestPool)]},
			},
			Prompts: []UserPrompt{
				{Question: "A perfect Sunday looks like", Answer: "a long walk and good coffee"},
			},
			VerificationPicture: &VerificationPicture{
				UUID:    &picUUID,
				HasData: true,
			},
		}

		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}
	}
	log.Println("Seeded 20 users.")

	// autoincrement does not restart after DELETE, so read the ids back
	var userIDs []uint64
	if err := db.Model(&User{}).Order("id").Pluck("id", &userIDs).Error; err != nil {
		return err
	}

	// relations: likes with some blocks/hides/reports sprinkled in
	for _, actorID := range userIDs {
		for j := 0; j < 6; j++ {
			targetID := userIDs[r.Intn(len(userIDs))]
			if targetID == actorID {
				continue
			}

			kind := RelationLiked
			switch r.Intn(10) {
			case 0:
				kind = RelationBlocked
			case 1:
				kind = RelationHidden
			case 2:
				kind = RelationReported
			}

			rel := UserRelation{UserID: actorID, TargetID: targetID, Kind: kind}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rel).Error; err != nil {
				return fmt.Errorf("failed to seed relation: %w", err)
			}
		}
	}

	// verification votes: everyone votes on a few pictures
	var pictures []VerificationPicture
	if err := db.Find(&pictures).Error; err != nil {
		return err
	}
	for _, pic := range pictures {
		for _, voterID := range userIDs {
			if voterID == pic.UserID || r.Intn(3) != 0 {
				continue
			}
			vote := VerificationVote{
				PictureID: pic.ID,
				VoterID:   voterID,
				Approve:   r.Intn(10) < 8,
			}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&vote).Error; err != nil {
				return fmt.Errorf("failed to seed vote: %w", err)
			}
		}
	}

	return nil
}
