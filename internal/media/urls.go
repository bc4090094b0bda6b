package media

import "context"

// Public media route prefixes, mirrored by the media delivery service.
const (
	imagePath        = "/media/img/"
	audioPath        = "/media/audio/"
	verificationPath = "/media/verification/"
)

// Builder renders domain-relative public URLs for profile media.
type Builder struct {
	domain string
}

func NewBuilder(domain string) *Builder {
	return &Builder{domain: domain}
}

func (b *Builder) ProfilePictureURL(uuid string) string {
	return b.domain + imagePath + uuid
}

func (b *Builder) AudioURL(uuid string) string {
	return b.domain + audioPath + uuid
}

// VerificationPictureURL matches the signer interface; the plain builder has
// nothing to sign.
func (b *Builder) VerificationPictureURL(_ context.Context, uuid string) (string, error) {
	return b.domain + verificationPath + uuid, nil
}
