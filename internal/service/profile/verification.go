package profile

import (
	"context"

	"github.com/amity-dating/amity/internal/db"
)

// Peer consensus thresholds: no verdict below the minimum sample, then at
// most one "no" per five "yes".
const (
	verificationMinimum = 5
	verificationFactor  = 5
)

// VerificationProjection is the trust/voting summary scoped by viewer
// consent. The detailed fields stay at zero values unless the viewer is
// entitled to them.
type VerificationProjection struct {
	HasPicture bool   `json:"has_picture"`
	PendingURL string `json:"pending_url,omitempty"`

	VerifiedByAdmin    bool   `json:"verified_by_admin"`
	VerifiedByUsers    bool   `json:"verified_by_users"`
	VotedByCurrentUser bool   `json:"voted_by_current_user"`
	YesVotes           int    `json:"yes_votes"`
	NoVotes            int    `json:"no_votes"`
	UUID               string `json:"uuid,omitempty"`
}

// IsVerifiedByUsers computes the peer consensus verdict from vote counts.
func IsVerifiedByUsers(yesVotes, noVotes int) bool {
	if yesVotes < verificationMinimum {
		return false
	}
	return noVotes*verificationFactor <= yesVotes
}

// projectVerification builds the verification summary. Everyone learns
// whether a picture exists; vote tallies and verdicts are shown only to
// viewers who are not the subject and either have their own verification
// picture on file or are admins.
func (p *Projector) projectVerification(ctx context.Context, subject, viewer *db.User) (VerificationProjection, error) {
	out := VerificationProjection{}

	pic := subject.VerificationPicture
	out.HasPicture = pic != nil && pic.HasData
	if pic == nil {
		return out, nil
	}

	picUUID := subject.UUID
	if pic.UUID != nil {
		picUUID = *pic.UUID
	}

	if !pic.VerifiedByAdmin {
		url, err := p.media.VerificationPictureURL(ctx, picUUID)
		if err != nil {
			return VerificationProjection{}, err
		}
		out.PendingURL = url
	}

	if subject.ID == viewer.ID || (viewer.VerificationPicture == nil && !viewer.Admin) {
		return out, nil
	}

	yes := pic.YesVoters()
	no := pic.NoVoters()
	out.YesVotes = len(yes)
	out.NoVotes = len(no)
	out.VerifiedByUsers = IsVerifiedByUsers(len(yes), len(no))
	out.VerifiedByAdmin = pic.VerifiedByAdmin
	out.VotedByCurrentUser = containsID(yes, viewer.ID) || containsID(no, viewer.ID)
	out.UUID = picUUID

	return out, nil
}

func containsID(ids []uint64, id uint64) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
