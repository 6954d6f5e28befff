package router

import (
	"github.com/labstack/echo/v4"

	"github.com/lovepcsy/salon-site/internal/handler"
	"github.com/lovepcsy/salon-site/internal/middleware"
	"github.com/lovepcsy/salon-site/internal/session"
)

// RegisterAdmin registers the admin panel behind the session guard.
// Every route in the group requires a valid admin session; anonymous
// requests are redirected to the login form.
func RegisterAdmin(e *echo.Echo, ad *handler.AdminHandler, s *handler.ServiceHandler, p *handler.PostHandler, ap *handler.AppointmentHandler, store session.Store, secret string) {
	g := e.Group("/admin")
	g.Use(middleware.RequireAdmin(store, secret))

	g.GET("/dashboard", ad.Dashboard)

	g.GET("/profile", ad.Profile)
	g.POST("/change-profile", ad.ChangeProfile)

	g.GET("/banner", ad.BannerPage)
	g.POST("/banner", ad.BannerUpload)
	g.POST("/banner/:id/toggle", ad.BannerToggle)

	g.GET("/sections", ad.SectionsPage)
	g.POST("/sections", ad.SectionCreate)

	g.GET("/queries", ad.Queries)

	g.GET("/services", s.AdminList)
	g.POST("/services/:id/delete", s.AdminDelete)

	g.GET("/posts", p.AdminList)
	g.POST("/posts/:id/delete", p.AdminDelete)

	g.GET("/appointments", ap.AdminList)
}
