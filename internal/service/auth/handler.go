package auth

import (
	"crypto/rand"
	"encoding/json"
	"math/big"
	"net/http"
	"time"

	"github.com/amity-dating/amity/internal/app"
	svcErr "github.com/amity-dating/amity/internal/errors"
	"github.com/amity-dating/amity/internal/repository"
	"github.com/amity-dating/amity/internal/server"
)

// ambiguous glyphs (0/O, 1/I) are left out on purpose
const captchaCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const captchaLength = 6

// Handler exposes the login and captcha endpoints.
type Handler struct {
	appCtx   *app.AppContext
	pipeline *Pipeline
}

// NewHandler builds the authentication pipeline from the app context.
func NewHandler(appCtx *app.AppContext) *Handler {
	pipeline := NewPipeline(
		repository.NewUserRepository(appCtx.DB),
		appCtx.RedisCache,
		BcryptMatcher{},
		appCtx.Logger,
	)
	return &Handler{appCtx: appCtx, pipeline: pipeline}
}

type loginRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CaptchaID   int64  `json:"captcha_id"`
	CaptchaText string `json:"captcha_text"`
}

type loginResponse struct {
	Token   string   `json:"token"`
	Subject string   `json:"subject"`
	Roles   []string `json:"roles"`
}

// Login runs the authentication pipeline and issues a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		svcErr.WriteInvalidArgument(w, "invalid request body")
		return
	}

	identity, err := h.pipeline.Authenticate(r.Context(), AuthAttempt{
		Email:       req.Email,
		Password:    req.Password,
		CaptchaID:   req.CaptchaID,
		CaptchaText: req.CaptchaText,
	})
	if err != nil {
		// internal log keeps the distinguished reason, the response does not
		h.appCtx.Logger.Info("login rejected", "email", repository.NormalizeEmail(req.Email), "reason", err)
		svcErr.WriteError(w, err)
		return
	}

	ttl := time.Duration(h.appCtx.Config.Auth.TokenTTLMins) * time.Minute
	token, err := GenerateToken(identity, []byte(h.appCtx.Config.Auth.JWTSecret), ttl)
	if err != nil {
		h.appCtx.Logger.Error("token generation failed", "err", err)
		svcErr.WriteError(w, err)
		return
	}

	server.WriteJSON(w, http.StatusOK, loginResponse{
		Token:   token,
		Subject: identity.Subject,
		Roles:   identity.Roles,
	})
}

type captchaResponse struct {
	CaptchaID int64 `json:"captcha_id"`
	// Text is only echoed in development; production delivers it as an image
	Text string `json:"text,omitempty"`
}

// CreateCaptcha issues a fresh single-use challenge.
func (h *Handler) CreateCaptcha(w http.ResponseWriter, r *http.Request) {
	text, err := randomCaptchaText()
	if err != nil {
		svcErr.WriteError(w, err)
		return
	}

	id, err := h.appCtx.RedisCache.CreateCaptcha(r.Context(), text)
	if err != nil {
		h.appCtx.Logger.Error("captcha creation failed", "err", err)
		svcErr.WriteError(w, err)
		return
	}

	resp := captchaResponse{CaptchaID: id}
	if h.appCtx.Config.App.ENV == "development" {
		resp.Text = text
	}
	server.WriteJSON(w, http.StatusCreated, resp)
}

func randomCaptchaText() (string, error) {
	out := make([]byte, captchaLength)
	for i := range out {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(captchaCharset))))
		if err != nil {
			return "", err
		}
		out[i] = captchaCharset[n.Int64()]
	}
	return string(out), nil
}
