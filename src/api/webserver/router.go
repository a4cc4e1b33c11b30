package webserver

import (
	"net/http"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/truthlens/truthlens/src/api/config"
	"github.com/truthlens/truthlens/src/api/newsapi"
	"github.com/truthlens/truthlens/src/api/users"
	"github.com/truthlens/truthlens/src/api/verify"
)

func attachRoutes(r *gin.Engine, cfg config.Config, db *gorm.DB, rdb *redis.Client) {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
	}
	if len(cfg.AllowOrigins) == 1 && cfg.AllowOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowOrigins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg), RequestID())

	// Redis-backed limiting when configured, per-process otherwise.
	var limit gin.HandlerFunc
	if rdb != nil {
		limit = RedisRateLimitMiddleware(rdb, cfg.RateLimit, cfg.RateWindow)
	} else {
		limit = RateLimitMiddleware(NewRateLimiter(cfg.RateLimit, cfg.RateWindow))
	}

	fetcher := newsapi.NewClient(cfg.NewsAPIKey, cfg.NewsAPIURL)
	verifier := verify.New(fetcher, verify.NewScorer(cfg.VerifyStrategy))
	userSvc := users.NewService(db, users.NewHasher(cfg.PasswordScheme))

	authH := NewAuth(userSvc, []byte(cfg.JWTSecret))
	verifyH := NewVerify(verifier)

	r.GET("/health", Health)

	limited := r.Group("/", limit)
	{
		limited.POST("/verify", verifyH.Check)
		limited.POST("/register", authH.Register)
		limited.POST("/login", authH.Login)
	}

	secured := r.Group("/me", JWTMiddleware([]byte(cfg.JWTSecret)))
	secured.GET("", authH.Me)

	if cfg.StaticDir != "" {
		r.StaticFile("/", filepath.Join(cfg.StaticDir, "home.html"))
		fileServer := http.FileServer(gin.Dir(cfg.StaticDir, false))
		r.NoRoute(func(c *gin.Context) {
			if c.Request.Method != http.MethodGet {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			fileServer.ServeHTTP(c.Writer, c.Request)
		})
	}
}
