package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/lovepcsy/salon-site/internal/model"
	"github.com/lovepcsy/salon-site/internal/repository"
)

// WebsiteHandler serves the public pages: home, about and the contact
// form.  Read failures on the home page degrade to a partial render
// (missing banner or section) rather than an error page; the failure is
// logged so it is distinguishable from an empty table.
type WebsiteHandler struct {
	Banners   *repository.BannerRepo
	Sections  *repository.SectionRepo
	Inquiries *repository.InquiryRepo
}

func NewWebsiteHandler(b *repository.BannerRepo, s *repository.SectionRepo, q *repository.InquiryRepo) *WebsiteHandler {
	return &WebsiteHandler{Banners: b, Sections: s, Inquiries: q}
}

// Home renders the landing page with the active banner and the most
// recently created section block.  sql.ErrNoRows simply means there is
// nothing to show; any other error is an infrastructure failure and is
// logged before degrading.
func (h *WebsiteHandler) Home(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	var banner *model.Banner
	if b, err := h.Banners.GetActive(ctx); err == nil {
		banner = &b
	} else if !errors.Is(err, sql.ErrNoRows) {
		log.Error().Err(err).Msg("home: load active banner failed")
	}

	var section *model.SectionBlock
	if s, err := h.Sections.Latest(ctx); err == nil {
		section = &s
	} else if !errors.Is(err, sql.ErrNoRows) {
		log.Error().Err(err).Msg("home: load latest section failed")
	}

	return render(c, http.StatusOK, "home", echo.Map{
		"Title":   "Home",
		"Banner":  banner,
		"Section": section,
	})
}

// About renders the static about page.
func (h *WebsiteHandler) About(c echo.Context) error {
	return render(c, http.StatusOK, "about", echo.Map{"Title": "About"})
}

// ContactForm renders the empty contact form.
func (h *WebsiteHandler) ContactForm(c echo.Context) error {
	return render(c, http.StatusOK, "contact", echo.Map{
		"Title": "Contact",
		"Form":  map[string]string{},
	})
}

// ContactSubmit stores a contact form submission.  All four fields are
// required; a blank field re-renders the form with the submitted values
// and an error, and inserts nothing.
func (h *WebsiteHandler) ContactSubmit(c echo.Context) error {
	form := map[string]string{
		"full_name": strings.TrimSpace(c.FormValue("full_name")),
		"mobile_no": strings.TrimSpace(c.FormValue("mobile_no")),
		"email":     strings.TrimSpace(c.FormValue("email")),
		"message":   strings.TrimSpace(c.FormValue("message")),
	}
	for _, v := range form {
		if v == "" {
			return render(c, http.StatusOK, "contact", echo.Map{
				"Title": "Contact",
				"Form":  form,
				"Error": "Please fill all fields.",
			})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Inquiries.Create(ctx, form["full_name"], form["mobile_no"], form["email"], form["message"]); err != nil {
		log.Error().Err(err).Msg("contact: insert inquiry failed")
		return render(c, http.StatusOK, "contact", echo.Map{
			"Title": "Contact",
			"Form":  form,
			"Error": "Something went wrong. Please try again later.",
		})
	}

	return render(c, http.StatusOK, "contact", echo.Map{
		"Title":   "Contact",
		"Form":    map[string]string{},
		"Success": "Your query has been submitted successfully!",
	})
}

// NotFound renders the shared 404 page.
func NotFound(c echo.Context) error {
	return render(c, http.StatusNotFound, "not_found", echo.Map{"Title": "Not found"})
}
