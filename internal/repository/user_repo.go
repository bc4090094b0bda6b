package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amity-dating/amity/internal/db"
)

// UserRepository provides data access for users and their directed relations.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new repository bound to the given DB connection.
func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{db: database}
}

// NormalizeEmail lower-cases and trims an address so lookups are
// case-insensitive regardless of how the client typed it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindByEmail looks a user up by normalized email.
// A missing user is reported as (nil, nil), not an error.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*db.User, error) {
	var user db.User
	err := r.db.WithContext(ctx).
		Where("email = ?", NormalizeEmail(email)).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a bare user row.
func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*db.User, error) {
	var user db.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetForProjection loads a user with everything the profile projector reads:
// interests (insertion order), prompts, and the verification picture with its
// votes.
func (r *UserRepository) GetForProjection(ctx context.Context, id uint64) (*db.User, error) {
	var user db.User
	err := r.db.WithContext(ctx).
		Preload("Interests", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("Prompts", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("VerificationPicture.Votes").
		First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// PutRelation inserts a directed relation row; replays are no-ops.
//
// Example:
//
//	repo.PutRelation(ctx, 1, 2, db.RelationBlocked) // user 1 blocked user 2
func (r *UserRepository) PutRelation(ctx context.Context, userID, targetID uint64, kind string) error {
	rel := db.UserRelation{
		UserID:   userID,
		TargetID: targetID,
		Kind:     kind,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rel).Error
}

// HasRelation reports whether a (userID -> targetID, kind) edge exists.
// This is the membership test behind every viewer-relative flag.
func (r *UserRepository) HasRelation(ctx context.Context, userID, targetID uint64, kind string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.UserRelation{}).
		Where("user_id = ? AND target_id = ? AND kind = ?", userID, targetID, kind).
		Count(&count).Error
	return count > 0, err
}

// CountRelationsTo counts incoming edges of one kind, e.g. how many users
// blocked or reported the target.
func (r *UserRepository) CountRelationsTo(ctx context.Context, targetID uint64, kind string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.UserRelation{}).
		Where("target_id = ? AND kind = ?", targetID, kind).
		Count(&count).Error
	return count, err
}
