package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentbridge/marketplace-web/internal/backend"
	"github.com/talentbridge/marketplace-web/internal/web/view"
)

type authData struct {
	view.Base
	Signup bool
	Form   authForm
	Err    string
}

// LoginPage renders the auth page. ?type=signup opens it in signup mode;
// new accounts default to the worker role.
func (h *Handler) LoginPage(c echo.Context) error {
	data := authData{
		Base:   h.base(c, "Login"),
		Signup: c.QueryParam("type") == "signup",
		Form:   authForm{UserType: "worker"},
	}
	return c.Render(http.StatusOK, "login.html", data)
}

// Authenticate handles both login and signup submissions; the hidden mode
// field selects which. Success persists the session pair and redirects to
// the role's dashboard; failure re-renders the form with the typed values
// and the backend's message.
func (h *Handler) Authenticate(c echo.Context) error {
	var form authForm
	if err := c.Bind(&form); err != nil {
		return h.renderAuthError(c, form, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderAuthError(c, form, err.Error())
	}

	ctx := c.Request().Context()
	var result *backend.AuthResult
	if form.signup() {
		reg, err := form.registration()
		if err != nil {
			return h.renderAuthError(c, form, err.Error())
		}
		result, err = h.api.Register(ctx, reg)
		if err != nil {
			return h.renderAuthError(c, form, backend.ErrorMessage(err))
		}
	} else {
		var err error
		result, err = h.api.Login(ctx, backend.Credentials{Email: form.Email, Password: form.Password})
		if err != nil {
			return h.renderAuthError(c, form, backend.ErrorMessage(err))
		}
	}

	if err := h.sessions.Save(c.Response(), result.AccessToken, result.User); err != nil {
		h.log.Error().Err(err).Msg("auth: persisting session failed")
		return h.renderAuthError(c, form, "something went wrong")
	}

	if form.signup() {
		setFlash(c, "success", "Account created! Welcome to TalentBridge.")
	} else {
		setFlash(c, "success", "Welcome back!")
	}
	return c.Redirect(http.StatusSeeOther, result.User.UserType.DashboardPath())
}

func (h *Handler) renderAuthError(c echo.Context, form authForm, msg string) error {
	if form.UserType == "" {
		form.UserType = "worker"
	}
	data := authData{
		Base:   h.base(c, "Login"),
		Signup: form.signup(),
		Form:   form,
		Err:    msg,
	}
	return c.Render(http.StatusOK, "login.html", data)
}

// Logout clears the session pair and returns to the landing page. It is a
// POST so a prefetched link can never log the visitor out.
func (h *Handler) Logout(c echo.Context) error {
	h.sessions.Clear(c.Response())
	return c.Redirect(http.StatusSeeOther, "/")
}
