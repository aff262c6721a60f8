package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/vet-scheduler/internal/audit"
	"github.com/BruksfildServices01/vet-scheduler/internal/config"
	domain "github.com/BruksfildServices01/vet-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/vet-scheduler/internal/handlers"
	"github.com/BruksfildServices01/vet-scheduler/internal/httperr"
	"github.com/BruksfildServices01/vet-scheduler/internal/logger"
	"github.com/BruksfildServices01/vet-scheduler/internal/metrics"
	"github.com/BruksfildServices01/vet-scheduler/internal/middleware"
	"github.com/BruksfildServices01/vet-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/vet-scheduler/internal/usecase/appointment"
)

// Deps are the singletons the HTTP surface is built from.
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Repo     domain.Repository
	Log      logrus.FieldLogger
	Resolver middleware.IdentityResolver
	Users    handlers.UserActivator
	Limiter  *middleware.RateLimiter
	Audit    *audit.Dispatcher
	Metrics  *metrics.Recorder
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	loc := timezone.Location(cfg.Timezone)

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(gin.CustomRecovery(func(c *gin.Context, rec any) {
		d.Log.WithField("panic", rec).Error("request panicked")
		httperr.Internal(c, "internal_error")
	}))
	r.Use(logger.Middleware(d.Log))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigin))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().In(loc)})
	})
	if d.Metrics != nil {
		r.GET("/metrics", d.Metrics.Handler())
	}

	// ======================================================
	// USE CASE DEPENDENCIES
	// ======================================================
	ucDeps := ucAppointment.Deps{
		Repo:    d.Repo,
		Audit:   d.Audit,
		Metrics: d.Metrics,
		Now:     timezone.Clock(cfg.Timezone),
		Hours:   domain.DefaultBusinessHours,
		Timeout: cfg.StoreTTL,
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(ucDeps, loc)
	meHandler := handlers.NewMeHandler(d.Repo)
	serviceHandler := handlers.NewServiceHandler(d.DB)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, loc)
	userHandler := handlers.NewUserHandler(d.Users, d.Audit)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	if d.Limiter != nil {
		api.Use(d.Limiter.Middleware())
	}
	api.Use(middleware.AuthMiddleware(cfg, d.Resolver, d.Log))
	{
		api.GET("/me", meHandler.GetMe)
		api.GET("/servicios", serviceHandler.List)

		citas := api.Group("/citas")
		{
			citas.GET("", middleware.RequireStaff(), appointmentHandler.List)
			citas.POST("", appointmentHandler.Create)

			citas.GET("/mis-citas", middleware.RequireRoles(domain.RoleGuardian), appointmentHandler.ListMine)
			citas.GET("/profesional/mis-citas",
				middleware.RequireRoles(domain.RoleVeterinarian, domain.RoleAdmin),
				appointmentHandler.ProfessionalAgenda,
			)
			citas.GET("/disponibilidad", appointmentHandler.Availability)
			citas.GET("/estadisticas", middleware.RequireStaff(), appointmentHandler.Stats)

			citas.GET("/:id", appointmentHandler.Get)
			citas.PUT("/:id", appointmentHandler.Update)
			citas.POST("/:id/confirmar", appointmentHandler.Confirm)
			citas.POST("/:id/cancelar", appointmentHandler.Cancel)
			citas.POST("/:id/check-in", appointmentHandler.CheckIn)
			citas.POST("/:id/iniciar-atencion", appointmentHandler.BeginTreatment)
			citas.POST("/:id/finalizar-atencion", appointmentHandler.EndTreatment)
			citas.POST("/:id/reprogramar", appointmentHandler.Reschedule)
		}

		api.GET("/auditoria", middleware.RequireRoles(domain.RoleAdmin), auditLogsHandler.List)

		usuarios := api.Group("/usuarios", middleware.RequireRoles(domain.RoleAdmin))
		{
			usuarios.POST("/:id/desactivar", userHandler.Deactivate)
			usuarios.POST("/:id/activar", userHandler.Activate)
		}
	}
}
