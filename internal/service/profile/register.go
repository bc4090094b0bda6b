package profile

import (
	"github.com/go-chi/chi/v5"

	"github.com/amity-dating/amity/internal/app"
	"github.com/amity-dating/amity/internal/idcodec"
	"github.com/amity-dating/amity/internal/service/auth"
)

// Registrar ties the profile service into the HTTP server. Codec and media
// collaborators are constructed in main and passed in explicitly.
type Registrar struct {
	appCtx     *app.AppContext
	codec      *idcodec.Codec
	media      MediaURLs
	intentions IntentionMatcher
}

// NewRegistrar creates a new Registrar for the profile service
func NewRegistrar(appCtx *app.AppContext, codec *idcodec.Codec, media MediaURLs, intentions IntentionMatcher) *Registrar {
	return &Registrar{appCtx: appCtx, codec: codec, media: media, intentions: intentions}
}

// Register mounts the profile routes behind bearer authentication
func (r *Registrar) Register(router chi.Router) {
	h := NewHandler(r.appCtx, r.codec, r.media, r.intentions)
	router.Group(func(g chi.Router) {
		g.Use(auth.RequireUser(r.appCtx))
		g.Get("/users/{token}", h.GetUser)
	})
}
