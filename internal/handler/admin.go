package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/lovepcsy/salon-site/internal/config"
	"github.com/lovepcsy/salon-site/internal/repository"
	"github.com/lovepcsy/salon-site/internal/session"
	"github.com/lovepcsy/salon-site/internal/upload"
	"github.com/lovepcsy/salon-site/internal/utils"
)

// AdminHandler implements the admin panel: dashboard, profile, banner
// and section management, and the contact query list.  Every route here
// sits behind the RequireAdmin guard.
type AdminHandler struct {
	Cfg       config.Config
	Users     *repository.UserRepo
	Banners   *repository.BannerRepo
	Sections  *repository.SectionRepo
	Inquiries *repository.InquiryRepo
	Sessions  session.Store
	Uploads   *upload.Saver
}

func NewAdminHandler(cfg config.Config, u *repository.UserRepo, b *repository.BannerRepo, s *repository.SectionRepo, q *repository.InquiryRepo, st session.Store, up *upload.Saver) *AdminHandler {
	return &AdminHandler{Cfg: cfg, Users: u, Banners: b, Sections: s, Inquiries: q, Sessions: st, Uploads: up}
}

// dashboardStats is the data block rendered at the top of the dashboard.
type dashboardStats struct {
	TotalUsers     uint64
	TotalInquiries uint64
}

// Dashboard renders the landing page of the admin panel.  Failed count
// queries degrade to zeros and are logged.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	var stats dashboardStats
	if n, err := h.Users.Count(ctx); err == nil {
		stats.TotalUsers = n
	} else {
		log.Error().Err(err).Msg("dashboard: count users failed")
	}
	if n, err := h.Inquiries.Count(ctx); err == nil {
		stats.TotalInquiries = n
	} else {
		log.Error().Err(err).Msg("dashboard: count inquiries failed")
	}

	return render(c, http.StatusOK, "admin_dashboard", echo.Map{
		"Title": "Dashboard",
		"Stats": stats,
	})
}

// Profile renders the profile form with the admin's current row.
func (h *AdminHandler) Profile(c echo.Context) error {
	admin, ok := currentAdmin(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/auth/login")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByID(ctx, admin.ID)
	if err != nil {
		log.Error().Err(err).Uint64("id", admin.ID).Msg("profile: load failed")
		session.FlashError(c, "Failed to load profile")
		return c.Redirect(http.StatusFound, "/admin/dashboard")
	}
	return render(c, http.StatusOK, "admin_profile", echo.Map{
		"Title": "Profile",
		"User":  u,
	})
}

// ChangeProfile applies the profile form: name and email always, the
// password only when the field is non-blank, the avatar only when a new
// file was uploaded.  On success the session copy of the admin is
// refreshed so the panel shows the new data immediately.
func (h *AdminHandler) ChangeProfile(c echo.Context) error {
	admin, ok := currentAdmin(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/auth/login")
	}

	name := strings.TrimSpace(c.FormValue("name"))
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	if name == "" || email == "" {
		session.FlashError(c, "Name and email are required")
		return c.Redirect(http.StatusFound, "/admin/profile")
	}

	update := repository.ProfileUpdate{Name: name, Email: email}

	if pw := c.FormValue("password"); strings.TrimSpace(pw) != "" {
		hash, err := utils.HashPassword(pw, h.Cfg.BcryptCost)
		if err != nil {
			log.Error().Err(err).Msg("profile: hash password failed")
			session.FlashError(c, "Failed to update profile")
			return c.Redirect(http.StatusFound, "/admin/profile")
		}
		update.PasswordHash = &hash
	}

	if fh, err := c.FormFile("avatar"); err == nil && fh != nil {
		saved, err := h.Uploads.Save(fh, upload.Avatar)
		if err != nil {
			session.FlashError(c, uploadErrorMessage(err))
			return c.Redirect(http.StatusFound, "/admin/profile")
		}
		update.Avatar = &saved.PublicPath
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Users.UpdateProfile(ctx, admin.ID, update); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			session.FlashError(c, "Email already registered")
		} else {
			log.Error().Err(err).Uint64("id", admin.ID).Msg("profile: update failed")
			session.FlashError(c, "Failed to update profile")
		}
		return c.Redirect(http.StatusFound, "/admin/profile")
	}

	// Refresh the session copy from the row we just wrote.
	if u, err := h.Users.GetByID(ctx, admin.ID); err == nil {
		if token, ok := sessionToken(c); ok {
			refreshed := session.Admin{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar}
			if err := h.Sessions.Update(ctx, token, refreshed); err != nil {
				log.Warn().Err(err).Msg("profile: refresh session failed")
			}
		}
	}

	session.FlashSuccess(c, "Profile updated")
	return c.Redirect(http.StatusFound, "/admin/profile")
}

// BannerPage renders the banner table and upload form.  A failed list
// query degrades to an empty table and is logged.
func (h *AdminHandler) BannerPage(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	banners, err := h.Banners.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("admin: list banners failed")
	}
	return render(c, http.StatusOK, "admin_banner", echo.Map{
		"Title":   "Banners",
		"Banners": banners,
	})
}

// BannerUpload stores a new banner.  The image is required, must pass
// the banner upload rules (including the exact 1200x500 dimension
// check), and when "make active" is ticked the insert and the clearing
// of the previous active banner happen in one transaction.
func (h *AdminHandler) BannerUpload(c echo.Context) error {
	fh, err := c.FormFile("banner_image")
	if err != nil || fh == nil {
		session.FlashError(c, "Please upload an image.")
		return c.Redirect(http.StatusFound, "/admin/banner")
	}

	saved, err := h.Uploads.Save(fh, upload.Banner)
	if err != nil {
		session.FlashError(c, uploadErrorMessage(err))
		return c.Redirect(http.StatusFound, "/admin/banner")
	}

	title := strings.TrimSpace(c.FormValue("title"))
	content := strings.TrimSpace(c.FormValue("content"))
	makeActive := c.FormValue("make_active") == "on"

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Banners.Create(ctx, title, content, saved.PublicPath, makeActive); err != nil {
		log.Error().Err(err).Msg("admin: create banner failed")
		session.FlashError(c, "Banner upload failed")
		return c.Redirect(http.StatusFound, "/admin/banner")
	}
	session.FlashSuccess(c, "Banner uploaded")
	return c.Redirect(http.StatusFound, "/admin/banner")
}

// BannerToggle flips the active state of one banner.
func (h *AdminHandler) BannerToggle(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		session.FlashError(c, "Invalid banner id")
		return c.Redirect(http.StatusFound, "/admin/banner")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Banners.Toggle(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			session.FlashError(c, "Not found")
		} else {
			log.Error().Err(err).Uint64("id", id).Msg("admin: toggle banner failed")
			session.FlashError(c, "Operation failed")
		}
		return c.Redirect(http.StatusFound, "/admin/banner")
	}
	session.FlashSuccess(c, "Banner state updated")
	return c.Redirect(http.StatusFound, "/admin/banner")
}

// SectionsPage renders the section blocks and the create form.
func (h *AdminHandler) SectionsPage(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	sections, err := h.Sections.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("admin: list sections failed")
	}
	return render(c, http.StatusOK, "admin_sections", echo.Map{
		"Title":    "Sections",
		"Sections": sections,
	})
}

// SectionCreate stores a new section block.  The image is required.
func (h *AdminHandler) SectionCreate(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil || fh == nil {
		session.FlashError(c, "Please upload an image.")
		return c.Redirect(http.StatusFound, "/admin/sections")
	}

	saved, err := h.Uploads.Save(fh, upload.Section)
	if err != nil {
		session.FlashError(c, uploadErrorMessage(err))
		return c.Redirect(http.StatusFound, "/admin/sections")
	}

	title := strings.TrimSpace(c.FormValue("title"))
	content := strings.TrimSpace(c.FormValue("content"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Sections.Create(ctx, title, content, saved.PublicPath); err != nil {
		log.Error().Err(err).Msg("admin: create section failed")
		session.FlashError(c, "Failed to save section block")
		return c.Redirect(http.StatusFound, "/admin/sections")
	}
	session.FlashSuccess(c, "Section block saved successfully")
	return c.Redirect(http.StatusFound, "/admin/sections")
}

// Queries renders the contact form submissions.
func (h *AdminHandler) Queries(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	queries, err := h.Inquiries.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("admin: list queries failed")
	}
	return render(c, http.StatusOK, "admin_queries", echo.Map{
		"Title":   "Queries",
		"Queries": queries,
	})
}
