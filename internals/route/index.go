// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/configs"
	classroomRoute "trainingcenter_backend/internals/features/scheduling/classrooms/route"
	conflictSvc "trainingcenter_backend/internals/features/scheduling/conflicts/service"
	groupSvc "trainingcenter_backend/internals/features/scheduling/groups/service"
	scheduleRoute "trainingcenter_backend/internals/features/scheduling/schedules/route"
	scheduleSvc "trainingcenter_backend/internals/features/scheduling/schedules/service"
	sessionRoute "trainingcenter_backend/internals/features/scheduling/sessions/route"
	sessionSvc "trainingcenter_backend/internals/features/scheduling/sessions/service"
	"trainingcenter_backend/internals/features/scheduling/validation"
	"trainingcenter_backend/internals/middlewares"
)

var startTime time.Time

// Deps are the process-wide handles the routes are built on.
type Deps struct {
	DB    *gorm.DB
	Redis *redis.Client
	Cfg   configs.Config
}

func SetupRoutes(app *fiber.App, deps Deps) {
	startTime = time.Now()
	log := zap.L().Named("routes")

	BaseRoutes(app, deps)

	// ===================== WIRING =====================
	directory := groupSvc.NewDirectory(deps.DB)
	groups := groupSvc.NewCachedGroups(directory, deps.Redis, deps.Cfg.GroupCacheTTL)
	checker := conflictSvc.NewChecker(
		scheduleSvc.NewStore(deps.DB),
		sessionSvc.NewStore(deps.DB),
		groups,
		directory,
	)
	schedules := scheduleSvc.NewService(deps.DB, checker)
	sessions := sessionSvc.NewService(deps.DB, checker, groups)
	v := validation.New()

	// ===================== GROUPS =====================
	log.Info("setting up PUBLIC group")
	public := app.Group("/api/public")

	log.Info("setting up ADMIN group")
	admin := app.Group("/api/a", middlewares.WriteRateLimiter())

	// ===================== MOUNT ROUTES =====================
	log.Info("mounting scheduling routes")
	classroomRoute.ClassroomPublicRoutes(public)
	scheduleRoute.ScheduleAdminRoutes(admin, schedules, v)
	sessionRoute.SessionAdminRoutes(admin, sessions, v)
}
