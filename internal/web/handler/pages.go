package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentbridge/marketplace-web/internal/backend"
	"github.com/talentbridge/marketplace-web/internal/core/domain"
	"github.com/talentbridge/marketplace-web/internal/web/view"
)

type homeData struct {
	view.Base
	Categories domain.CategoryMap
}

// Home renders the landing page. The category strip is best-effort; a
// reference fetch failure hides it rather than failing the page.
func (h *Handler) Home(c echo.Context) error {
	data := homeData{Base: h.base(c, "TalentBridge")}
	cats, err := h.ref.Categories(c.Request().Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("home: categories unavailable")
	} else {
		data.Categories = cats
	}
	return c.Render(http.StatusOK, "home.html", data)
}

type categoriesData struct {
	view.Base
	Categories domain.CategoryMap
	Err        string
}

// CategoriesPage renders the category taxonomy.
func (h *Handler) CategoriesPage(c echo.Context) error {
	data := categoriesData{Base: h.base(c, "Categories")}
	cats, err := h.ref.Categories(c.Request().Context())
	if err != nil {
		data.Err = backend.ErrorMessage(err)
	} else {
		data.Categories = cats
	}
	return c.Render(http.StatusOK, "categories.html", data)
}

type pricingData struct {
	view.Base
	Pricing *domain.Pricing
	Err     string
}

// PricingPage renders the subscription plans and commission structure.
func (h *Handler) PricingPage(c echo.Context) error {
	data := pricingData{Base: h.base(c, "Pricing")}
	pricing, err := h.ref.Pricing(c.Request().Context())
	if err != nil {
		data.Err = backend.ErrorMessage(err)
	} else {
		data.Pricing = pricing
	}
	return c.Render(http.StatusOK, "pricing.html", data)
}

// About renders the static about page.
func (h *Handler) About(c echo.Context) error {
	return c.Render(http.StatusOK, "about.html", h.base(c, "About"))
}

// Contact renders the static contact page.
func (h *Handler) Contact(c echo.Context) error {
	return c.Render(http.StatusOK, "contact.html", h.base(c, "Contact"))
}
