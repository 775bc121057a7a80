package server

import (
	"net/http"

	"leadsdesk/internal/auth"
	"leadsdesk/internal/config"
	"leadsdesk/internal/middleware"
	"leadsdesk/internal/obs"
	"leadsdesk/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func setupRouter(cfg *config.Config, log *zap.Logger, h *Handlers, tokens *auth.TokenIssuer, users repository.IUserRepository) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.SetTrustedProxies(nil)
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.FrontendURL))
	r.Use(obs.RequestLogger(log))
	r.Use(obs.Instrument())

	r.GET("/metrics", gin.WrapH(obs.MetricsHandler()))

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authenticated := middleware.Authenticate(tokens, users)

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", h.Auth.Register)
		authRoutes.POST("/login", h.Auth.Login)
		authRoutes.POST("/logout", h.Auth.Logout)
		authRoutes.POST("/forgot-password", h.Auth.ForgotPassword)
		authRoutes.POST("/reset-password/:token", h.Auth.ResetPassword)
		authRoutes.GET("/me", authenticated, h.Auth.Me)
	}

	leads := api.Group("/leads", authenticated)
	{
		leads.GET("", middleware.RequirePermission(auth.PermViewLeads), h.Leads.List)
		leads.GET("/stats", h.Leads.Stats)
		leads.GET("/:id", middleware.RequirePermission(auth.PermViewLeads), h.Leads.Get)
		leads.POST("", middleware.RequirePermission(auth.PermCreateLeads), h.Leads.Create)
		leads.PUT("/:id", middleware.RequirePermission(auth.PermEditLeads), h.Leads.Update)
		leads.DELETE("/:id", middleware.RequirePermission(auth.PermDeleteLeads), h.Leads.Delete)
	}

	projects := api.Group("/projects", authenticated)
	{
		projects.GET("", middleware.RequirePermission(auth.PermViewSales), h.Projects.List)
		projects.GET("/stats", middleware.RequirePermission(auth.PermViewSales), h.Projects.Stats)
		projects.GET("/:id", middleware.RequirePermission(auth.PermViewSales), h.Projects.Get)
		projects.POST("", middleware.RequirePermission(auth.PermCreateSales), h.Projects.Create)
		projects.PUT("/:id", middleware.RequirePermission(auth.PermCreateSales), h.Projects.Update)
		projects.DELETE("/:id", middleware.RequirePermission(auth.PermCreateSales), h.Projects.Delete)
	}

	// Payment listing is open to any authenticated principal; row
	// visibility is still ownership-scoped in the service.
	payments := api.Group("/payments", authenticated)
	{
		payments.GET("", h.Payments.List)
		payments.GET("/stats", h.Payments.Stats)
		payments.GET("/:id", middleware.RequirePermission(auth.PermViewSales), h.Payments.Get)
		payments.POST("", middleware.RequirePermission(auth.PermCreateSales), h.Payments.Create)
		payments.PUT("/:id", middleware.RequirePermission(auth.PermCreateSales), h.Payments.Update)
		payments.DELETE("/:id", middleware.RequirePermission(auth.PermCreateSales), h.Payments.Delete)
	}

	invoices := api.Group("/invoices", authenticated)
	{
		invoices.GET("", middleware.RequirePermission(auth.PermViewSales), h.Invoices.List)
		invoices.GET("/stats", h.Invoices.Stats)
		invoices.GET("/:id", middleware.RequirePermission(auth.PermViewSales), h.Invoices.Get)
		invoices.POST("", h.Invoices.Create)
		invoices.PUT("/:id", middleware.RequirePermission(auth.PermCreateSales), h.Invoices.Update)
		invoices.DELETE("/:id", middleware.RequirePermission(auth.PermCreateSales), h.Invoices.Delete)
	}

	admin := api.Group("/admin", authenticated, middleware.RequireAdmin())
	{
		admin.GET("/csrs", h.Admin.ListCSRs)
		admin.POST("/csrs", h.Admin.CreateCSR)
		admin.PUT("/csrs/:id/permissions", h.Admin.UpdatePermissions)
		admin.DELETE("/csrs/:id", h.Admin.DeleteCSR)
		admin.GET("/permissions", h.Admin.ListPermissions)
	}

	dashboard := api.Group("/dashboard", authenticated)
	{
		dashboard.GET("/admin", middleware.RequireAdmin(), h.Dashboard.Admin)
		dashboard.GET("/csr", h.Dashboard.CSR)
		dashboard.GET("/agent-analytics", middleware.RequireAdmin(), h.Dashboard.AgentAnalytics)
	}

	return r
}
