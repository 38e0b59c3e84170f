// Package router defines how HTTP routes are registered for the API.
// Route groups mirror the role model: the catalog is public, bookings
// require any authenticated caller, and the review queue, check-in desk
// and reports are staff-only.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/campushub/facility-booking/internal/config"
	"github.com/campushub/facility-booking/internal/handler"
	"github.com/campushub/facility-booking/internal/middleware"
	"github.com/campushub/facility-booking/internal/model"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	Facility *handler.FacilityHandler
	Booking  *handler.BookingHandler
	Admin    *handler.AdminBookingHandler
	Checkin  *handler.CheckinHandler
	Report   *handler.ReportHandler
}

// Register mounts all routes on the Echo instance. rdb may be nil; the
// cache and rate-limit middleware degrade to pass-throughs without it.
func Register(e *echo.Echo, cfg config.Config, h Handlers, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// Unauthenticated session endpoints. Rate limited so credential
	// stuffing burns the bucket, not the database.
	auth := e.Group("/auth", limiter)
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	e.GET("/auth/me", h.Auth.Me, middleware.JWTAuth(cfg.JWTSecret))

	// Public catalog. Responses do not depend on the caller, so the
	// Redis response cache applies here and only here.
	e.GET("/facilities", h.Facility.List, cache)
	e.GET("/facilities/:id", h.Facility.Get, cache)
	e.GET("/facilities/:id/slots", h.Facility.ListSlots, cache)

	// Member endpoints: any authenticated role may book.
	member := e.Group("/bookings",
		middleware.JWTAuth(cfg.JWTSecret),
		middleware.RequireRole(model.RoleMember, model.RoleStaff),
		limiter,
	)
	member.POST("", h.Booking.Create)
	member.GET("/me", h.Booking.ListMine)
	member.DELETE("/:id", h.Booking.Cancel)

	// Staff endpoints.
	staff := e.Group("",
		middleware.JWTAuth(cfg.JWTSecret),
		middleware.RequireRole(model.RoleStaff),
	)
	staff.GET("/admin/bookings/pending", h.Admin.ListPending)
	staff.PUT("/admin/bookings/:id/approve", h.Admin.Approve)
	staff.PUT("/admin/bookings/:id/reject", h.Admin.Reject)
	staff.POST("/checkins/qr", h.Checkin.Checkin)
	staff.GET("/reports/summary", h.Report.Summary)
}
