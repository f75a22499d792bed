// AngelaMos | 2026
// session.go

package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rossoverde/supporters/internal/auth"
	"github.com/rossoverde/supporters/internal/i18n"
	"github.com/rossoverde/supporters/internal/middleware"
)

type authData struct {
	Next  string
	Email string
	Error string
}

// AuthPage sends visitors who already have a session back home.
func (h *Handler) AuthPage(w http.ResponseWriter, r *http.Request) {
	if middleware.IsAuthenticated(r.Context()) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.renderAuth(w, r, http.StatusOK, authData{
		Next: i18n.SafeRedirect(r.URL.Query().Get("next")),
	})
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	lang := i18n.FromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		h.renderAuth(w, r, http.StatusBadRequest, authData{Error: i18n.T(lang, "auth.signin_error")})
		return
	}

	next := i18n.SafeRedirect(r.PostForm.Get("next"))
	req := auth.SignInRequest{
		Email:    r.PostForm.Get("email"),
		Password: r.PostForm.Get("password"),
	}
	form := authData{Next: next, Email: req.Email}

	if err := h.validator.Struct(req); err != nil {
		form.Error = i18n.T(lang, "auth.invalid_credentials")
		h.renderAuth(w, r, http.StatusBadRequest, form)
		return
	}

	resp, err := h.cfg.Sessions.SignIn(r.Context(), req, r.UserAgent(), middleware.ClientIP(r))
	if err != nil {
		status := http.StatusUnauthorized
		form.Error = i18n.T(lang, "auth.invalid_credentials")
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			slog.ErrorContext(r.Context(), "page sign-in failed", "error", err)
			status = http.StatusInternalServerError
			form.Error = i18n.T(lang, "auth.signin_error")
		}
		h.renderAuth(w, r, status, form)
		return
	}

	h.cfg.Cookie.Set(w, resp.AccessToken, resp.ExpiresAt)
	http.Redirect(w, r, next, http.StatusSeeOther)
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	lang := i18n.FromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		h.renderAuth(w, r, http.StatusBadRequest, authData{Error: i18n.T(lang, "auth.signup_error")})
		return
	}

	next := i18n.SafeRedirect(r.PostForm.Get("next"))
	req := auth.SignUpRequest{
		Email:           r.PostForm.Get("email"),
		Password:        r.PostForm.Get("password"),
		ConfirmPassword: r.PostForm.Get("confirm_password"),
		Language:        lang.String(),
	}
	form := authData{Next: next, Email: req.Email}

	if err := auth.CheckPassword(req.Password, req.ConfirmPassword); err != nil {
		form.Error = passwordMessage(lang, err)
		h.renderAuth(w, r, http.StatusBadRequest, form)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		form.Error = i18n.T(lang, "auth.signup_error")
		h.renderAuth(w, r, http.StatusBadRequest, form)
		return
	}

	resp, err := h.cfg.Sessions.SignUp(r.Context(), req, r.UserAgent(), middleware.ClientIP(r))
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			status = http.StatusConflict
			form.Error = i18n.T(lang, "auth.already_registered")
		case errors.Is(err, auth.ErrPasswordTooShort), errors.Is(err, auth.ErrPasswordMismatch):
			status = http.StatusBadRequest
			form.Error = passwordMessage(lang, err)
		default:
			slog.ErrorContext(r.Context(), "page sign-up failed", "error", err)
			form.Error = i18n.T(lang, "auth.signup_error")
		}
		h.renderAuth(w, r, status, form)
		return
	}

	h.cfg.Cookie.Set(w, resp.AccessToken, resp.ExpiresAt)
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// SignOut always clears the cookie, even when revoking the token fails.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	if claims := middleware.GetClaims(r.Context()); claims != nil {
		if err := h.cfg.Sessions.SignOut(r.Context(), claims, ""); err != nil {
			slog.WarnContext(r.Context(), "page sign-out failed",
				"user_id", claims.UserID,
				"error", err,
			)
		}
	}

	h.cfg.Cookie.Clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) renderAuth(w http.ResponseWriter, r *http.Request, status int, data authData) {
	if data.Next == "" {
		data.Next = "/"
	}
	lang := i18n.FromContext(r.Context())
	h.render(w, r, status, "auth", i18n.T(lang, "auth.signin"), data)
}

func passwordMessage(lang i18n.Language, err error) string {
	if errors.Is(err, auth.ErrPasswordMismatch) {
		return i18n.T(lang, "auth.password_mismatch")
	}
	return i18n.T(lang, "auth.password_too_short")
}
