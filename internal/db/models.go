package db

import (
	"strings"
	"time"
)

// Distance units a user can prefer.
const (
	UnitMetric   = 0
	UnitImperial = 1
)

// Kinds of directed user -> user relations. One row per (user, target, kind),
// membership is always an indexed query, never an object traversal.
const (
	RelationBlocked  = "blocked"
	RelationHidden   = "hidden"
	RelationReported = "reported"
	RelationLiked    = "liked"
)

// User table. Account state, profile and preference fields.
type User struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	UUID         string `gorm:"uniqueIndex;size:36;not null"`
	Email        string `gorm:"uniqueIndex;size:128;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Disabled     bool   `gorm:"default:false"`
	Confirmed    bool   `gorm:"default:false"`
	Admin        bool   `gorm:"default:false"`

	FirstName         string `gorm:"size:64"`
	DateOfBirth       *time.Time
	Gender            string `gorm:"size:16"`
	Country           string `gorm:"size:2"` // ISO 3166-1 alpha-2
	Units             int    `gorm:"default:0"`
	Description       string `gorm:"size:1024"`
	ShowZodiac        bool
	LocationLatitude  *float64
	LocationLongitude *float64
	TotalDonations    float64
	LastActiveAt      time.Time

	// media; nil means the user has not uploaded the resource
	ProfilePictureUUID *string `gorm:"size:36"`
	AudioUUID          *string `gorm:"size:36"`

	// preferences
	PreferredGenders string `gorm:"size:64"` // comma-separated
	PreferredMinAge  int
	PreferredMaxAge  int
	Intention        string `gorm:"size:16"`

	Interests           []UserInterest       `gorm:"foreignKey:UserID"`
	Prompts             []UserPrompt         `gorm:"foreignKey:UserID"`
	VerificationPicture *VerificationPicture `gorm:"foreignKey:UserID"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// PreferredGenderSet parses the stored comma-separated preference list.
func (u *User) PreferredGenderSet() map[string]bool {
	set := make(map[string]bool)
	for _, g := range strings.Split(u.PreferredGenders, ",") {
		if g = strings.TrimSpace(g); g != "" {
			set[g] = true
		}
	}
	return set
}

// UserInterest is one free-text interest tag; list order is insertion order.
type UserInterest struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement"`
	UserID uint64 `gorm:"index;not null"`
	Text   string `gorm:"size:64;not null"`
}

// UserPrompt is a question/answer pair shown on the profile.
type UserPrompt struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	UserID   uint64 `gorm:"index;not null"`
	Question string `gorm:"size:128;not null"`
	Answer   string `gorm:"size:512"`
}

// UserRelation represents a directed edge from UserID to TargetID.
//
// Composite PK: (UserID, TargetID, Kind)
//   - One row per pair and kind, insertion is idempotent.
//
// Index:
//   - idx_relation_target_kind(target_id, kind)
//     Optimizes reverse counts ("how many users blocked/reported me").
type UserRelation struct {
	UserID    uint64    `gorm:"primaryKey"`
	TargetID  uint64    `gorm:"primaryKey;index:idx_relation_target_kind,priority:1"`
	Kind      string    `gorm:"primaryKey;size:16;index:idx_relation_target_kind,priority:2"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// VerificationPicture is the identity photo peers vote on.
// HasData mirrors whether binary content was uploaded; the bytes themselves
// live in media storage, not in this table.
type VerificationPicture struct {
	ID              uint64  `gorm:"primaryKey;autoIncrement"`
	UserID          uint64  `gorm:"uniqueIndex;not null"`
	UUID            *string `gorm:"size:36"`
	HasData         bool
	VerifiedByAdmin bool

	Votes []VerificationVote `gorm:"foreignKey:PictureID"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// YesVoters returns ids of users who approved the picture.
func (p *VerificationPicture) YesVoters() []uint64 { return p.voters(true) }

// NoVoters returns ids of users who rejected the picture.
func (p *VerificationPicture) NoVoters() []uint64 { return p.voters(false) }

func (p *VerificationPicture) voters(approve bool) []uint64 {
	var ids []uint64
	for _, v := range p.Votes {
		if v.Approve == approve {
			ids = append(ids, v.VoterID)
		}
	}
	return ids
}

// VerificationVote is a single peer vote. A voter has at most one row per
// picture, so they can never sit on both sides.
type VerificationVote struct {
	PictureID uint64    `gorm:"primaryKey"`
	VoterID   uint64    `gorm:"primaryKey"`
	Approve   bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
