package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kittenluv1/clubhouse-sub000/config"
	"github.com/kittenluv1/clubhouse-sub000/internal/api/handler"
	"github.com/kittenluv1/clubhouse-sub000/internal/api/middleware"
	"github.com/kittenluv1/clubhouse-sub000/pkg/jwt"
	"github.com/kittenluv1/clubhouse-sub000/pkg/redis"
)

// maxBodyBytes 请求体大小上限（导入文件走 multipart，同样受此限制）
const maxBodyBytes = 8 << 20

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	optionalAuth := middleware.OptionalJWTAuth(jwtMgr, rdb)
	requireAuth := middleware.JWTAuth(jwtMgr, rdb)
	moderatorOnly := middleware.RoleAuth("moderator", "admin")
	adminOnly := middleware.RoleAuth("admin")

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 名录模块（匿名可浏览，登录用户附带互动状态）
		clubs := v1.Group("/clubs")
		{
			clubs.GET("", optionalAuth, h.Club.SearchClubs)
			clubs.GET("/categories", h.Club.ListCategories)
			clubs.GET("/:id", optionalAuth, h.Club.GetClubDetail)

			clubs.POST("/:id/recompute", requireAuth, adminOnly, h.Club.RecomputeClub)
			if cfg.Feature.ImportEnabled {
				clubs.POST("/import", requireAuth, adminOnly, h.Import.ImportClubs)
			}

			clubs.POST("/:id/save/toggle", requireAuth, h.Engagement.ToggleSave)
		}

		// 评价模块
		reviews := v1.Group("/reviews")
		{
			reviews.POST("", optionalAuth, h.Review.SubmitReview)
			reviews.GET("/pending", requireAuth, moderatorOnly, h.Review.ListPending)
			reviews.POST("/:id/moderate", requireAuth, moderatorOnly, h.Review.ModerateReview)
			reviews.GET("/rejected", requireAuth, h.Review.ListRejected)
			reviews.POST("/rejected/:id/resubmit", requireAuth, h.Review.ResubmitReview)
			reviews.DELETE("/rejected/:id", requireAuth, h.Review.DiscardReview)
		}

		// 互动模块
		v1.POST("/likes/toggle", requireAuth, h.Engagement.ToggleLike)

		// 用户资料模块
		profile := v1.Group("/profile")
		profile.Use(requireAuth)
		{
			profile.GET("", h.Profile.GetProfile)
			profile.PUT("/alias", h.Profile.UpdateAlias)
			profile.PUT("/rejected-viewed", h.Profile.MarkRejectedViewed)
		}
	}

	return r
}
