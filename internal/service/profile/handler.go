package profile

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amity-dating/amity/internal/app"
	svcErr "github.com/amity-dating/amity/internal/errors"
	"github.com/amity-dating/amity/internal/idcodec"
	"github.com/amity-dating/amity/internal/repository"
	"github.com/amity-dating/amity/internal/server"
	"github.com/amity-dating/amity/internal/service/auth"
)

// Handler exposes the viewer-relative profile endpoint.
type Handler struct {
	appCtx    *app.AppContext
	repo      *repository.UserRepository
	codec     *idcodec.Codec
	projector *Projector
}

// NewHandler wires the projector with explicitly constructed collaborators.
func NewHandler(appCtx *app.AppContext, codec *idcodec.Codec, media MediaURLs, intentions IntentionMatcher) *Handler {
	repo := repository.NewUserRepository(appCtx.DB)
	return &Handler{
		appCtx:    appCtx,
		repo:      repo,
		codec:     codec,
		projector: NewProjector(repo, media, intentions, codec, appCtx.Logger),
	}
}

// GetUser projects the subject identified by the opaque path token relative
// to the authenticated viewer.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller := auth.ViewerFromContext(ctx)
	if caller == nil {
		svcErr.WriteUnauthorized(w, "no authenticated user")
		return
	}

	subjectID, err := h.codec.Decode(chi.URLParam(r, "token"))
	if err != nil {
		if errors.Is(err, idcodec.ErrMalformedToken) || errors.Is(err, idcodec.ErrInvalidToken) {
			svcErr.WriteError(w, svcErr.ErrNotFound)
			return
		}
		svcErr.WriteError(w, err)
		return
	}

	subject, err := h.repo.GetForProjection(ctx, subjectID)
	if err != nil {
		svcErr.WriteError(w, err)
		return
	}
	if subject == nil {
		svcErr.WriteError(w, svcErr.ErrNotFound)
		return
	}

	// the middleware loads a bare row; the projector needs the full graph
	viewer, err := h.repo.GetForProjection(ctx, caller.ID)
	if err != nil || viewer == nil {
		svcErr.WriteError(w, err)
		return
	}

	ignoreIntention := false
	switch r.URL.Query().Get("ignore_intention") {
	case "1", "true":
		ignoreIntention = true
	}

	projection, err := h.projector.Project(ctx, subject, viewer, ignoreIntention)
	if err != nil {
		h.appCtx.Logger.Error("projection failed", "subject", subject.ID, "viewer", viewer.ID, "err", err)
		svcErr.WriteError(w, err)
		return
	}

	if subject.ID != viewer.ID {
		if _, err := h.appCtx.RedisCache.IncrProfileViews(ctx, subject.ID); err != nil {
			h.appCtx.Logger.Debug("profile view counter unavailable", "err", err)
		}
	}

	server.WriteJSON(w, http.StatusOK, projection)
}
