// Package router defines how HTTP routes are registered for the site.
// Public pages, auth and the admin panel are registered by separate
// functions so the entrypoint can wire each area with exactly the
// dependencies it needs.
package router

import (
	"github.com/labstack/echo/v4"
	emw "github.com/labstack/echo/v4/middleware"

	"github.com/lovepcsy/salon-site/internal/handler"
)

// RegisterBase installs the middleware and routes every deployment
// gets: the health check, static assets and CSRF protection for form
// submissions.  The CSRF token is exposed to templates under the
// "csrf" context key.
func RegisterBase(e *echo.Echo, uploadRoot string) {
	e.Use(emw.CSRFWithConfig(emw.CSRFConfig{
		TokenLookup: "form:csrf",
		ContextKey:  "csrf",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/healthz"
		},
	}))

	e.GET("/healthz", handler.Health)
	e.Static("/public", "public")
	e.Static("/uploads", uploadRoot)

	e.RouteNotFound("/*", handler.NotFound)
}

// RegisterPublic registers the unauthenticated website routes: home,
// about, contact, the services catalogue, the blog and the appointment
// booking capture.
func RegisterPublic(e *echo.Echo, w *handler.WebsiteHandler, s *handler.ServiceHandler, p *handler.PostHandler, a *handler.AppointmentHandler) {
	e.GET("/", w.Home)
	e.GET("/about", w.About)
	e.GET("/contact", w.ContactForm)
	e.POST("/contact", w.ContactSubmit)

	e.GET("/services", s.List)
	e.GET("/services/add", s.AddForm)
	e.POST("/services/add", s.Add)
	e.GET("/services/edit/:id", s.EditForm)
	e.POST("/services/update/:id", s.Update)
	e.POST("/services/delete/:id", s.Delete)
	e.GET("/services/:id", s.Detail)

	e.GET("/posts", p.List)
	e.GET("/posts/post_add", p.AddForm)
	e.POST("/posts/post_add", p.Add)
	e.GET("/posts/edit/:id", p.EditForm)
	e.POST("/posts/update/:id", p.Update)
	e.POST("/posts/delete/:id", p.Delete)
	e.GET("/posts/:slug", p.Detail)

	e.POST("/appointments", a.Book)
}
