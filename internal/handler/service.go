package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/lovepcsy/salon-site/internal/repository"
	"github.com/lovepcsy/salon-site/internal/session"
)

// ServiceHandler implements the public service pages and the admin
// service management routes.
type ServiceHandler struct {
	Services *repository.ServiceRepo
}

func NewServiceHandler(s *repository.ServiceRepo) *ServiceHandler {
	return &ServiceHandler{Services: s}
}

// List renders all services, newest first, with a booking form per row.
func (h *ServiceHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	services, err := h.Services.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("services: list failed")
		session.FlashError(c, "Error loading services")
		return c.Redirect(http.StatusFound, "/")
	}
	return render(c, http.StatusOK, "services", echo.Map{
		"Title":    "Services",
		"Services": services,
	})
}

// Detail renders one service by id.
func (h *ServiceHandler) Detail(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return NotFound(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	svc, err := h.Services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			session.FlashError(c, "Service not found")
			return c.Redirect(http.StatusFound, "/services")
		}
		log.Error().Err(err).Uint64("id", id).Msg("services: load detail failed")
		session.FlashError(c, "Error loading service details")
		return c.Redirect(http.StatusFound, "/services")
	}
	return render(c, http.StatusOK, "service_detail", echo.Map{
		"Title":   svc.Title,
		"Service": svc,
	})
}

// AddForm renders the empty service form.
func (h *ServiceHandler) AddForm(c echo.Context) error {
	return render(c, http.StatusOK, "service_add", echo.Map{"Title": "Add service"})
}

// Add inserts a new service from the submitted form.
func (h *ServiceHandler) Add(c echo.Context) error {
	title := strings.TrimSpace(c.FormValue("title"))
	description := strings.TrimSpace(c.FormValue("description"))
	price, perr := strconv.ParseFloat(c.FormValue("price"), 64)
	duration, derr := strconv.ParseUint(c.FormValue("duration_minutes"), 10, 32)
	if title == "" || perr != nil || derr != nil {
		session.FlashError(c, "Please provide a title, price and duration")
		return c.Redirect(http.StatusFound, "/services/add")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Services.Create(ctx, title, description, price, uint32(duration)); err != nil {
		log.Error().Err(err).Msg("services: create failed")
		session.FlashError(c, "Error adding service")
		return c.Redirect(http.StatusFound, "/services/add")
	}
	session.FlashSuccess(c, "Service added successfully")
	return c.Redirect(http.StatusFound, "/services")
}

// EditForm renders the edit form for one service.
func (h *ServiceHandler) EditForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return NotFound(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	svc, err := h.Services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			session.FlashError(c, "Service not found")
		} else {
			log.Error().Err(err).Uint64("id", id).Msg("services: load for edit failed")
			session.FlashError(c, "Error loading service")
		}
		return c.Redirect(http.StatusFound, "/services")
	}
	return render(c, http.StatusOK, "service_edit", echo.Map{
		"Title":   "Edit service",
		"Service": svc,
	})
}

// Update overwrites a service from the submitted form.
func (h *ServiceHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return NotFound(c)
	}
	title := strings.TrimSpace(c.FormValue("title"))
	description := strings.TrimSpace(c.FormValue("description"))
	price, perr := strconv.ParseFloat(c.FormValue("price"), 64)
	duration, derr := strconv.ParseUint(c.FormValue("duration_minutes"), 10, 32)
	if title == "" || perr != nil || derr != nil {
		session.FlashError(c, "Please provide a title, price and duration")
		return c.Redirect(http.StatusFound, "/services")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Services.Update(ctx, id, title, description, price, uint32(duration)); err != nil {
		log.Error().Err(err).Uint64("id", id).Msg("services: update failed")
		session.FlashError(c, "Error updating service")
		return c.Redirect(http.StatusFound, "/services")
	}
	session.FlashSuccess(c, "Service updated successfully")
	return c.Redirect(http.StatusFound, "/services")
}

// Delete removes a service.  Deleting an id that no longer exists still
// redirects with success; the list is simply unchanged.
func (h *ServiceHandler) Delete(c echo.Context) error {
	return h.delete(c, "/services")
}

// AdminList renders the service table inside the admin panel.  A query
// failure degrades to an empty table and is logged.
func (h *ServiceHandler) AdminList(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	services, err := h.Services.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("admin: list services failed")
	}
	return render(c, http.StatusOK, "admin_services", echo.Map{
		"Title":    "Services",
		"Services": services,
	})
}

// AdminDelete removes a service from the admin panel.
func (h *ServiceHandler) AdminDelete(c echo.Context) error {
	return h.delete(c, "/admin/services")
}

func (h *ServiceHandler) delete(c echo.Context, redirect string) error {
	id, err := parseID(c)
	if err != nil {
		session.FlashError(c, "Invalid service id")
		return c.Redirect(http.StatusFound, redirect)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Services.Delete(ctx, id); err != nil {
		log.Error().Err(err).Uint64("id", id).Msg("services: delete failed")
		session.FlashError(c, "Failed to delete service")
		return c.Redirect(http.StatusFound, redirect)
	}
	session.FlashSuccess(c, "Service deleted successfully")
	return c.Redirect(http.StatusFound, redirect)
}
