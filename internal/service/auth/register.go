package auth

import (
	"github.com/go-chi/chi/v5"

	"github.com/amity-dating/amity/internal/app"
)

// Registrar ties the auth service into the HTTP server
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the auth service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register mounts the auth routes
func (r *Registrar) Register(router chi.Router) {
	h := NewHandler(r.appCtx)
	router.Post("/auth/login", h.Login)
	router.Post("/captcha", h.CreateCaptcha)
}
