package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	httpapi "github.com/teamup-dev/teamup-backend/internal/api/http"
	"github.com/teamup-dev/teamup-backend/internal/api/http/middleware"
	"github.com/teamup-dev/teamup-backend/internal/auth"
	authhttp "github.com/teamup-dev/teamup-backend/internal/auth/http"
	authsvc "github.com/teamup-dev/teamup-backend/internal/auth/service"
	matchcache "github.com/teamup-dev/teamup-backend/internal/matching/cache"
	matchhttp "github.com/teamup-dev/teamup-backend/internal/matching/http"
	matchrepo "github.com/teamup-dev/teamup-backend/internal/matching/repository"
	matchsvc "github.com/teamup-dev/teamup-backend/internal/matching/service"
	userhttp "github.com/teamup-dev/teamup-backend/internal/users/http"
	userrepo "github.com/teamup-dev/teamup-backend/internal/users/repository"
	usersvc "github.com/teamup-dev/teamup-backend/internal/users/service"
)

type RouterDeps struct {
	ServiceName      string
	Version          string
	DB               *pgxpool.Pool
	Redis            *redis.Client
	Identity         authsvc.IdentityVerifier
	TokenIssuer      *auth.TokenIssuer
	Images           usersvc.ImageStore
	EncryptionSecret string
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	users := userrepo.NewUserRepo(dep.DB, dep.EncryptionSecret)
	projects := matchrepo.NewProjectRepo(dep.DB)
	applications := matchrepo.NewApplicationRepo(dep.DB)
	members := matchrepo.NewMemberRepo(dep.DB)

	dashCache := matchcache.NewDashboardCache(dep.Redis)

	userService := usersvc.NewUserService(users, dep.Images)
	projectService := matchsvc.NewProjectService(projects, dashCache)
	applicationService := matchsvc.NewApplicationService(projects, applications, members, userService, dashCache)
	dashboardService := matchsvc.NewDashboardService(projects, applications, dashCache)
	authService := authsvc.NewAuthService(dep.Identity, users, dep.TokenIssuer)

	authhttp.Register(r.Group("/auth"), authService)

	api := r.Group("/api/v1")
	api.Use(auth.RequireJWT(dep.TokenIssuer))

	matchhttp.RegisterProjects(api.Group("/projects"), projectService)
	matchhttp.RegisterApplications(api, applicationService, middleware.PerUserRateLimit(rate.Every(time.Second), 5))
	matchhttp.RegisterDashboards(api.Group("/dashboard"), dashboardService)
	userhttp.Register(api.Group("/users"), userService)

	return r
}
