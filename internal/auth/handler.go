// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/rossoverde/supporters/internal/core"
	"github.com/rossoverde/supporters/internal/middleware"
)

// CookieConfig describes the HttpOnly cookie that carries the access token
// for server-rendered pages.
type CookieConfig struct {
	Name   string
	Secure bool
}

type Handler struct {
	service   *Service
	cookie    CookieConfig
	validator *validator.Validate
}

func NewHandler(service *Service, cookie CookieConfig) *Handler {
	return &Handler{
		service:   service,
		cookie:    cookie,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.SignUp)
		r.Post("/signin", h.SignIn)
		r.Post("/refresh", h.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Get("/session", h.GetSession)
			r.Post("/signout", h.SignOut)
			r.Post("/signout-all", h.SignOutAll)
			r.Get("/sessions", h.GetSessions)
			r.Delete("/sessions/{sessionID}", h.RevokeSession)
			r.Post("/change-password", h.ChangePassword)
		})
	})
}

// decode reads and validates a JSON body. It writes the 400 itself and
// reports whether the handler should continue.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		core.BadRequest(w, "invalid request body")
		return false
	}
	if err := h.validator.Struct(dst); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return false
	}
	return true
}

// signedIn returns the caller's claims or writes a 401.
func signedIn(w http.ResponseWriter, r *http.Request) (*middleware.AccessTokenClaims, bool) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		core.Unauthorized(w, "")
		return nil, false
	}
	return claims, true
}

// writeError maps service errors onto the response envelope. badCredentials
// is the message used for ErrInvalidCredentials, which differs per endpoint.
func writeError(w http.ResponseWriter, err error, badCredentials string) {
	var appErr *core.AppError
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		appErr = core.UnauthorizedError(badCredentials)
	case errors.Is(err, ErrPasswordTooShort):
		appErr = core.NewAppError(err, err.Error(), http.StatusBadRequest, "PASSWORD_TOO_SHORT")
	case errors.Is(err, ErrPasswordMismatch):
		appErr = core.NewAppError(err, err.Error(), http.StatusBadRequest, "PASSWORD_MISMATCH")
	case errors.Is(err, ErrEmailExists):
		appErr = core.DuplicateError("email")
	case errors.Is(err, ErrTokenReuse):
		appErr = core.NewAppError(
			core.ErrTokenRevoked,
			"security alert: token reuse detected, all sessions revoked",
			http.StatusUnauthorized,
			"TOKEN_REUSE_DETECTED",
		)
	case errors.Is(err, core.ErrTokenExpired):
		appErr = core.TokenExpiredError()
	case errors.Is(err, core.ErrTokenRevoked):
		appErr = core.TokenRevokedError()
	case errors.Is(err, core.ErrTokenInvalid):
		appErr = core.TokenInvalidError()
	case errors.Is(err, core.ErrNotFound):
		appErr = core.NotFoundError("session")
	case errors.Is(err, core.ErrForbidden):
		appErr = core.ForbiddenError("cannot revoke another account's session")
	default:
		core.InternalServerError(w, err)
		return
	}
	core.JSONError(w, appErr)
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.service.SignUp(r.Context(), req, r.UserAgent(), middleware.ClientIP(r))
	if err != nil {
		writeError(w, err, "")
		return
	}

	h.cookie.Set(w, resp.AccessToken, resp.ExpiresAt)
	core.Created(w, resp)
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.service.SignIn(r.Context(), req, r.UserAgent(), middleware.ClientIP(r))
	if err != nil {
		writeError(w, err, "invalid email or password")
		return
	}

	h.cookie.Set(w, resp.AccessToken, resp.ExpiresAt)
	core.OK(w, resp)
}

// Refresh rotates a refresh token. Presenting an already rotated token
// revokes its whole family.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.service.Refresh(r.Context(), req.RefreshToken, r.UserAgent(), middleware.ClientIP(r))
	if err != nil {
		writeError(w, err, "")
		return
	}

	h.cookie.Set(w, resp.AccessToken, resp.ExpiresAt)
	core.OK(w, resp)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	claims, ok := signedIn(w, r)
	if !ok {
		return
	}
	core.OK(w, h.service.CurrentSession(claims))
}

// SignOut accepts an empty body; a refresh token, when given, is revoked too.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	claims, ok := signedIn(w, r)
	if !ok {
		return
	}

	var req SignOutRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			core.BadRequest(w, "invalid request body")
			return
		}
	}

	if err := h.service.SignOut(r.Context(), claims, req.RefreshToken); err != nil {
		writeError(w, err, "")
		return
	}

	h.cookie.Clear(w)
	core.NoContent(w)
}

func (h *Handler) SignOutAll(w http.ResponseWriter, r *http.Request) {
	claims, ok := signedIn(w, r)
	if !ok {
		return
	}

	if err := h.service.SignOutAll(r.Context(), claims.UserID); err != nil {
		writeError(w, err, "")
		return
	}

	h.cookie.Clear(w)
	core.NoContent(w)
}

func (h *Handler) GetSessions(w http.ResponseWriter, r *http.Request) {
	claims, ok := signedIn(w, r)
	if !ok {
		return
	}

	sessions, err := h.service.GetActiveSessions(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err, "")
		return
	}
	core.OK(w, SessionsResponse{Sessions: sessions})
}

func (h *Handler) RevokeSession(w http.ResponseWriter, r *http.Request) {
	claims, ok := signedIn(w, r)
	if !ok {
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	if err := h.service.RevokeSession(r.Context(), claims.UserID, sessionID); err != nil {
		writeError(w, err, "")
		return
	}
	core.NoContent(w)
}

// ChangePassword bumps the token version, so the caller must sign in again.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := signedIn(w, r)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	err := h.service.ChangePassword(r.Context(), claims.UserID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		writeError(w, err, "current password is incorrect")
		return
	}

	h.cookie.Clear(w)
	core.NoContent(w)
}

// Set writes the session cookie. It is a no-op when no cookie name is
// configured.
func (c CookieConfig) Set(w http.ResponseWriter, token string, expiresAt time.Time) {
	if c.Name == "" {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c CookieConfig) Clear(w http.ResponseWriter) {
	if c.Name == "" {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
