package profile

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/amity-dating/amity/internal/db"
	"github.com/amity-dating/amity/internal/idcodec"
)

// RelationSource answers directed-membership and reverse-count queries over
// the relation table.
type RelationSource interface {
	HasRelation(ctx context.Context, userID, targetID uint64, kind string) (bool, error)
	CountRelationsTo(ctx context.Context, targetID uint64, kind string) (int64, error)
}

// MediaURLs renders public URLs for a user's media resources.
type MediaURLs interface {
	ProfilePictureURL(uuid string) string
	AudioURL(uuid string) string
	VerificationPictureURL(ctx context.Context, uuid string) (string, error)
}

// IntentionMatcher is the matching-policy collaborator; the engine only
// invokes it.
type IntentionMatcher interface {
	Compatible(a, b string) bool
}

// Prompt is a question/answer pair as shown to the viewer.
type Prompt struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Projection is the viewer-relative snapshot of a subject's profile.
// The zero value of every viewer-relative field is the correct value for
// self-projection.
type Projection struct {
	PublicID    string  `json:"id"`
	UUID        string  `json:"uuid"`
	FirstName   string  `json:"first_name"`
	Age         int     `json:"age,omitempty"`
	Gender      string  `json:"gender"`
	Description string  `json:"description"`
	Country     string  `json:"country"` // flag glyph, not the raw code
	Zodiac      string  `json:"zodiac,omitempty"`
	ShowZodiac  bool    `json:"show_zodiac"`
	Units       int     `json:"units"`
	Donations   float64 `json:"total_donations"`

	Interests       []string `json:"interests"`
	CommonInterests []string `json:"common_interests,omitempty"`
	Prompts         []Prompt `json:"prompts"`

	ProfilePictureURL string `json:"profile_picture,omitempty"`
	HasAudio          bool   `json:"has_audio"`
	AudioURL          string `json:"audio,omitempty"`

	PreferredGenders []string `json:"preferred_genders"`
	PreferredMinAge  int      `json:"preferred_min_age"`
	PreferredMaxAge  int      `json:"preferred_max_age"`
	Intention        string   `json:"intention"`

	NumBlockedBy int64 `json:"num_blocked_by"`
	NumReports   int64 `json:"num_reports"`

	BlockedByCurrentUser  bool `json:"blocked_by_current_user"`
	ReportedByCurrentUser bool `json:"reported_by_current_user"`
	LikesCurrentUser      bool `json:"likes_current_user"`
	LikedByCurrentUser    bool `json:"liked_by_current_user"`
	HiddenByCurrentUser   bool `json:"hidden_by_current_user"`

	HasLocation     bool `json:"has_location"`
	Distance        *int `json:"distance,omitempty"`
	Compatible      bool `json:"compatible"`
	LastActiveState int  `json:"last_active_state"`

	Verification VerificationProjection `json:"verification_picture"`

	// viewer-only fields, populated only when subject == viewer
	Email             string   `json:"email,omitempty"`
	LocationLatitude  *float64 `json:"location_latitude,omitempty"`
	LocationLongitude *float64 `json:"location_longitude,omitempty"`
}

// Projector assembles projections from loaded entities and the collaborators
// above. It keeps no state between calls.
type Projector struct {
	relations  RelationSource
	media      MediaURLs
	intentions IntentionMatcher
	codec      *idcodec.Codec
	log        *slog.Logger
	now        func() time.Time
}

func NewProjector(relations RelationSource, media MediaURLs, intentions IntentionMatcher, codec *idcodec.Codec, log *slog.Logger) *Projector {
	return &Projector{
		relations:  relations,
		media:      media,
		intentions: intentions,
		codec:      codec,
		log:        log,
		now:        time.Now,
	}
}

// WithNow overrides the clock, for tests.
func (p *Projector) WithNow(now func() time.Time) *Projector {
	p.now = now
	return p
}

// Project builds the outward-facing representation of subject as seen by
// viewer. Subject and viewer must be loaded with interests, prompts and
// verification votes. Either the whole projection is produced or an error is
// returned; nothing partial escapes.
func (p *Projector) Project(ctx context.Context, subject, viewer *db.User, ignoreIntention bool) (*Projection, error) {
	self := subject.ID == viewer.ID
	now := p.now()

	out := &Projection{}

	if self {
		out.Email = subject.Email
		out.LocationLatitude = subject.LocationLatitude
		out.LocationLongitude = subject.LocationLongitude
	}

	publicID, err := p.codec.Encode(subject.ID)
	if err != nil {
		return nil, err
	}
	out.PublicID = publicID
	out.UUID = subject.UUID

	if subject.DateOfBirth != nil {
		out.Age = ageAt(*subject.DateOfBirth, now)
		if viewer.ShowZodiac && subject.ShowZodiac {
			out.Zodiac = zodiacSign(*subject.DateOfBirth)
		}
	}

	out.FirstName = subject.FirstName
	out.Gender = subject.Gender
	out.Description = subject.Description
	out.Country = countryFlag(subject.Country)
	out.ShowZodiac = subject.ShowZodiac
	out.Units = subject.Units
	out.Donations = subject.TotalDonations
	out.HasLocation = subject.LocationLatitude != nil && subject.LocationLongitude != nil
	out.Intention = subject.Intention
	out.PreferredGenders = preferredGenderList(subject)
	out.PreferredMinAge = effectiveMinAge(subject.PreferredMinAge, out.Age)
	out.PreferredMaxAge = subject.PreferredMaxAge

	out.Interests = interestTexts(subject.Interests)
	for _, prompt := range subject.Prompts {
		out.Prompts = append(out.Prompts, Prompt{Question: prompt.Question, Answer: prompt.Answer})
	}

	if subject.ProfilePictureUUID != nil {
		out.ProfilePictureURL = p.media.ProfilePictureURL(*subject.ProfilePictureUUID)
	}
	if subject.AudioUUID != nil {
		out.HasAudio = true
		out.AudioURL = p.media.AudioURL(*subject.AudioUUID)
	}

	numBlockedBy, err := p.relations.CountRelationsTo(ctx, subject.ID, db.RelationBlocked)
	if err != nil {
		return nil, err
	}
	out.NumBlockedBy = numBlockedBy

	numReports, err := p.relations.CountRelationsTo(ctx, subject.ID, db.RelationReported)
	if err != nil {
		return nil, err
	}
	out.NumReports = numReports

	if !self {
		if err := p.fillRelationFlags(ctx, out, subject, viewer); err != nil {
			return nil, err
		}
		out.CommonInterests = commonInterests(viewer, subject)
		out.Distance = distanceBetween(viewer, subject)
	}

	// compatibility is computed even for self-projection
	out.Compatible = p.compatible(viewer, subject, ignoreIntention)

	out.LastActiveState = DefaultActiveState
	if !subject.Admin {
		out.LastActiveState = LastActiveState(subject.LastActiveAt, now)
	}

	verification, err := p.projectVerification(ctx, subject, viewer)
	if err != nil {
		return nil, err
	}
	out.Verification = verification

	return out, nil
}

// fillRelationFlags resolves the five viewer-relative booleans. Each flag
// tests membership of the other party's id in a relation set owned by the
// querying party.
func (p *Projector) fillRelationFlags(ctx context.Context, out *Projection, subject, viewer *db.User) error {
	var err error

	if out.BlockedByCurrentUser, err = p.relations.HasRelation(ctx, viewer.ID, subject.ID, db.RelationBlocked); err != nil {
		return err
	}
	if out.ReportedByCurrentUser, err = p.relations.HasRelation(ctx, viewer.ID, subject.ID, db.RelationReported); err != nil {
		return err
	}
	if out.LikesCurrentUser, err = p.relations.HasRelation(ctx, subject.ID, viewer.ID, db.RelationLiked); err != nil {
		return err
	}
	if out.LikedByCurrentUser, err = p.relations.HasRelation(ctx, viewer.ID, subject.ID, db.RelationLiked); err != nil {
		return err
	}
	if out.HiddenByCurrentUser, err = p.relations.HasRelation(ctx, viewer.ID, subject.ID, db.RelationHidden); err != nil {
		return err
	}
	return nil
}

func interestTexts(interests []db.UserInterest) []string {
	texts := make([]string, 0, len(interests))
	for _, interest := range interests {
		texts = append(texts, interest.Text)
	}
	return texts
}

// preferredGenderList keeps the stored order, unlike the membership set.
func preferredGenderList(user *db.User) []string {
	var list []string
	for _, g := range strings.Split(user.PreferredGenders, ",") {
		if g = strings.TrimSpace(g); g != "" {
			list = append(list, g)
		}
	}
	return list
}

// ageAt computes full years between birth date and now.
func ageAt(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	anniversary := birth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}
