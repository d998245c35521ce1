package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Giovannytrotta/Programa-SENTYA/config"
	"github.com/Giovannytrotta/Programa-SENTYA/internal/api/handler"
	"github.com/Giovannytrotta/Programa-SENTYA/internal/api/middleware"
	"github.com/Giovannytrotta/Programa-SENTYA/pkg/jwt"
	"github.com/Giovannytrotta/Programa-SENTYA/pkg/redis"
)

// Role groups mirroring the identity service's access tiers.
var (
	coordinatorOrAdmin = []string{"admin", "coordinator"}
	professionalAccess = []string{"admin", "coordinator", "professional"}
	staffAccess        = []string{"admin", "coordinator", "professional", "technician"}
)

// Setup builds and returns the Gin engine.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr, rdb))
	v1.Use(middleware.RateLimit(rdb, 300, time.Minute))
	{
		// workshop module
		workshops := v1.Group("/workshops")
		{
			workshops.GET("", middleware.RoleAuth(staffAccess...), h.Workshop.ListWorkshops)
			// Browse view for prospective enrollees: any authenticated role.
			workshops.GET("/available", h.Workshop.ListAvailableWorkshops)
			workshops.GET("/mine", middleware.RoleAuth(professionalAccess...), h.Workshop.ListMyWorkshops)
			workshops.GET("/:id", middleware.RoleAuth(staffAccess...), h.Workshop.GetWorkshop)
			workshops.POST("", middleware.RoleAuth(coordinatorOrAdmin...), h.Workshop.CreateWorkshop)
			workshops.PUT("/:id", middleware.RoleAuth(coordinatorOrAdmin...), h.Workshop.UpdateWorkshop)
			workshops.PUT("/:id/professional", middleware.RoleAuth(coordinatorOrAdmin...), h.Workshop.AssignProfessional)
			workshops.DELETE("/:id", middleware.RoleAuth(coordinatorOrAdmin...), h.Workshop.DeleteWorkshop)
		}

		// session module
		sessions := v1.Group("/sessions")
		{
			sessions.GET("/mine", middleware.RoleAuth(professionalAccess...), h.Session.ListMySessions)
			sessions.GET("/workshop/:id", middleware.RoleAuth(staffAccess...), h.Session.ListWorkshopSessions)
			sessions.GET("/workshop/:id/calendar.ics", middleware.RoleAuth(staffAccess...), h.Export.ExportWorkshopCalendar)
			sessions.GET("/:id", middleware.RoleAuth(staffAccess...), h.Session.GetSession)
			sessions.POST("", middleware.RoleAuth(professionalAccess...), h.Session.CreateSession)
			sessions.PUT("/:id", middleware.RoleAuth(professionalAccess...), h.Session.UpdateSession)
			sessions.POST("/:id/complete", middleware.RoleAuth(professionalAccess...), h.Session.CompleteSession)
			sessions.POST("/:id/cancel", middleware.RoleAuth(professionalAccess...), h.Session.CancelSession)
			sessions.DELETE("/:id", middleware.RoleAuth(coordinatorOrAdmin...), h.Session.DeleteSession)
		}

		// enrollment module
		workshopUsers := v1.Group("/workshop-users")
		{
			workshopUsers.POST("/enroll", middleware.RoleAuth(coordinatorOrAdmin...), h.Enrollment.Enroll)
			workshopUsers.DELETE("/:id", middleware.RoleAuth(coordinatorOrAdmin...), h.Enrollment.Unenroll)
			workshopUsers.GET("/workshop/:id", middleware.RoleAuth(staffAccess...), h.Enrollment.WorkshopStudents)
			workshopUsers.GET("/workshop/:id/waitlist", middleware.RoleAuth(staffAccess...), h.Enrollment.WorkshopWaitlist)
			workshopUsers.GET("/user/:id", middleware.RoleAuth(staffAccess...), h.Enrollment.UserWorkshops)
		}

		// attendance module
		attendance := v1.Group("/attendance")
		{
			attendance.POST("/session/:id", middleware.RoleAuth(professionalAccess...), h.Attendance.TakeAttendance)
			attendance.GET("/session/:id", middleware.RoleAuth(staffAccess...), h.Attendance.GetSessionAttendance)
			attendance.PUT("/session/:id", middleware.RoleAuth(professionalAccess...), h.Attendance.UpdateAttendance)
			attendance.GET("/user/:userId/workshop/:workshopId", middleware.RoleAuth(staffAccess...), h.Attendance.GetUserHistory)
			attendance.GET("/workshop/:id/report", middleware.RoleAuth(staffAccess...), h.Attendance.GetWorkshopReport)
			attendance.GET("/workshop/:id/report.xlsx", middleware.RoleAuth(staffAccess...), h.Export.ExportWorkshopReport)
			attendance.GET("/my-workshops", middleware.RoleAuth(professionalAccess...), h.Attendance.GetMyWorkshopsAttendance)
		}

		// reference data
		v1.GET("/thematic-areas", middleware.RoleAuth(staffAccess...), h.Reference.ListThematicAreas)
		v1.GET("/thematic-areas/:id", middleware.RoleAuth(staffAccess...), h.Reference.GetThematicArea)
		v1.GET("/centers", middleware.RoleAuth(staffAccess...), h.Reference.ListCenters)
		v1.GET("/centers/:id", middleware.RoleAuth(staffAccess...), h.Reference.GetCenter)
	}

	return r
}
