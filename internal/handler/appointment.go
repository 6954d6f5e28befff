package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/lovepcsy/salon-site/internal/model"
	"github.com/lovepcsy/salon-site/internal/queue"
	"github.com/lovepcsy/salon-site/internal/repository"
	"github.com/lovepcsy/salon-site/internal/session"
)

// AppointmentHandler captures booking requests from the public services
// page and lists them in the admin panel.  After a booking is stored an
// event is published for the notification consumer; publishing is
// best-effort and never fails the booking.
type AppointmentHandler struct {
	Appointments *repository.AppointmentRepo
	// Publish sends the booked event to the broker.  Nil disables
	// publishing (tests, or running without a broker).
	Publish func(ctx context.Context, evt queue.AppointmentBookedEvent) error
}

func NewAppointmentHandler(a *repository.AppointmentRepo, publish func(ctx context.Context, evt queue.AppointmentBookedEvent) error) *AppointmentHandler {
	return &AppointmentHandler{Appointments: a, Publish: publish}
}

// Book handles POST /appointments.  The service id/title pair is a
// snapshot of whatever the form carried; it is stored as-is and never
// validated against the services table.
func (h *AppointmentHandler) Book(c echo.Context) error {
	a := model.Appointment{
		FullName: strings.TrimSpace(c.FormValue("full_name")),
		Mobile:   strings.TrimSpace(c.FormValue("mobile")),
		Email:    strings.TrimSpace(c.FormValue("email")),
		Message:  strings.TrimSpace(c.FormValue("message")),
	}
	if id, err := strconv.ParseUint(c.FormValue("service_id"), 10, 64); err == nil {
		a.ServiceID = &id
	}
	if title := strings.TrimSpace(c.FormValue("service_title")); title != "" {
		a.ServiceTitle = &title
	}
	if a.FullName == "" || a.Mobile == "" || a.Email == "" {
		session.FlashError(c, "Please provide your name, mobile and email.")
		return c.Redirect(http.StatusFound, "/services?appointment=error")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Appointments.Create(ctx, &a); err != nil {
		log.Error().Err(err).Msg("appointments: insert failed")
		session.FlashError(c, "Something went wrong while booking appointment.")
		return c.Redirect(http.StatusFound, "/services?appointment=error")
	}

	if h.Publish != nil {
		evt := queue.AppointmentBookedEvent{
			AppointmentID: a.ID,
			FullName:      a.FullName,
			Mobile:        a.Mobile,
			Email:         a.Email,
			BookedAt:      time.Now().UTC().Format(time.RFC3339),
		}
		if a.ServiceID != nil {
			evt.ServiceID = *a.ServiceID
		}
		if a.ServiceTitle != nil {
			evt.ServiceTitle = *a.ServiceTitle
		}
		if err := h.Publish(ctx, evt); err != nil {
			log.Warn().Err(err).Uint64("appointment_id", a.ID).Msg("appointments: publish event failed")
		}
	}

	session.FlashSuccess(c, "Appointment submitted successfully!")
	return c.Redirect(http.StatusFound, "/services?appointment=success")
}

// AdminList renders all bookings inside the admin panel.
func (h *AppointmentHandler) AdminList(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	appointments, err := h.Appointments.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("admin: list appointments failed")
	}
	return render(c, http.StatusOK, "admin_appointments", echo.Map{
		"Title":        "Appointments",
		"Appointments": appointments,
	})
}
