package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/presenta/backend/api/handler"
	"github.com/presenta/backend/domain"
	"github.com/presenta/backend/internal/middleware"
)

type Handlers struct {
	Auth        *apiHandler.AuthHandler
	Profile     *apiHandler.ProfileHandler
	Property    *apiHandler.PropertyHandler
	Tenant      *apiHandler.TenantHandler
	Lease       *apiHandler.LeaseHandler
	Transaction *apiHandler.TransactionHandler
	Routine     *apiHandler.RoutineHandler
	Project     *apiHandler.ProjectHandler
	Task        *apiHandler.TaskHandler
	Health      *apiHandler.HealthHandler
}

type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// New wires every route. Auth endpoints stay public (login behind its own
// stricter limiter), everything else requires an authenticated active user,
// and admin stats additionally require the ADMIN role.
func New(handlers Handlers, auth Middleware, loginLimit Middleware, generalLimit Middleware) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Public auth routes
	r.POST("/api/auth/register", generalLimit(handlers.Auth.Register))
	r.POST("/api/auth/login", loginLimit(handlers.Auth.Login))
	r.POST("/api/auth/refresh-token", generalLimit(handlers.Auth.Refresh))
	r.GET("/api/auth/check", generalLimit(handlers.Auth.Check))
	r.POST("/api/auth/logout", generalLimit(handlers.Auth.Logout))
	r.GET("/api/auth/google/url", generalLimit(handlers.Auth.GoogleURL))
	r.GET("/api/auth/google/callback", generalLimit(handlers.Auth.GoogleCallback))

	protected := func(h fasthttp.RequestHandler) fasthttp.RequestHandler {
		return generalLimit(auth(h))
	}

	// Profile
	r.GET("/api/profile", protected(handlers.Profile.Get))
	r.PUT("/api/profile", protected(handlers.Profile.Update))
	r.PUT("/api/profile/preferences", protected(handlers.Profile.UpdatePreferences))

	// Properties
	r.GET("/api/propiedades", protected(handlers.Property.List))
	r.GET("/api/propiedades/stats", protected(handlers.Property.Stats))
	r.GET("/api/propiedades/{id}", protected(handlers.Property.Get))
	r.POST("/api/propiedades", protected(handlers.Property.Create))
	r.PUT("/api/propiedades/{id}", protected(handlers.Property.Update))
	r.PATCH("/api/propiedades/{id}/estado", protected(handlers.Property.SetStatus))
	r.DELETE("/api/propiedades/{id}", protected(handlers.Property.Delete))

	// Tenants
	r.GET("/api/inquilinos", protected(handlers.Tenant.List))
	r.GET("/api/inquilinos/{id}", protected(handlers.Tenant.Get))
	r.POST("/api/inquilinos", protected(handlers.Tenant.Create))
	r.PUT("/api/inquilinos/{id}", protected(handlers.Tenant.Update))
	r.DELETE("/api/inquilinos/{id}", protected(handlers.Tenant.Delete))

	// Leases
	r.GET("/api/contratos", protected(handlers.Lease.List))
	r.GET("/api/contratos/{id}", protected(handlers.Lease.Get))
	r.POST("/api/contratos", protected(handlers.Lease.Create))
	r.PUT("/api/contratos/{id}", protected(handlers.Lease.Update))
	r.DELETE("/api/contratos/{id}", protected(handlers.Lease.Delete))

	// Transactions
	r.GET("/api/transacciones", protected(handlers.Transaction.List))
	r.GET("/api/transacciones/categorias", protected(handlers.Transaction.Categories))
	r.GET("/api/transacciones/{id}", protected(handlers.Transaction.Get))
	r.POST("/api/transacciones", protected(handlers.Transaction.Create))
	r.PUT("/api/transacciones/{id}", protected(handlers.Transaction.Update))
	r.DELETE("/api/transacciones/{id}", protected(handlers.Transaction.Delete))

	// Routines
	r.GET("/api/rutinas", protected(handlers.Routine.List))
	r.GET("/api/rutinas/dia", protected(handlers.Routine.GetByDate))
	r.POST("/api/rutinas", protected(handlers.Routine.Save))
	r.DELETE("/api/rutinas/{id}", protected(handlers.Routine.Delete))

	// Projects and tasks
	r.GET("/api/proyectos", protected(handlers.Project.List))
	r.GET("/api/proyectos/{id}", protected(handlers.Project.Get))
	r.POST("/api/proyectos", protected(handlers.Project.Create))
	r.PUT("/api/proyectos/{id}", protected(handlers.Project.Update))
	r.DELETE("/api/proyectos/{id}", protected(handlers.Project.Delete))

	r.GET("/api/tareas", protected(handlers.Task.List))
	r.GET("/api/tareas/{id}", protected(handlers.Task.Get))
	r.POST("/api/tareas", protected(handlers.Task.Create))
	r.PUT("/api/tareas/{id}", protected(handlers.Task.Update))
	r.DELETE("/api/tareas/{id}", protected(handlers.Task.Delete))

	// Admin
	adminOnly := middleware.RequireRole(domain.RoleAdmin)
	r.GET("/api/admin/rutinas/stats", protected(adminOnly(handlers.Routine.Stats)))
	r.GET("/api/admin/propiedades", protected(adminOnly(handlers.Property.ListAll)))

	return r
}
