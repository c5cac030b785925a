package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"

	servermiddleware "github.com/hackwave-community/platform-api/cmd/server/internal/middleware"
	"github.com/hackwave-community/platform-api/internal/models"
	"github.com/hackwave-community/platform-api/cmd/server/internal/ratelimit"
	"github.com/hackwave-community/platform-api/cmd/server/internal/submissions"
	"github.com/hackwave-community/platform-api/internal/voting"
	"github.com/hackwave-community/platform-api/internal/config"
	"github.com/hackwave-community/platform-api/internal/logger"
)

const name = "github.com/hackwave-community/platform-api/server/routes/v1"

var tracer = otel.Tracer(name)

type Handler struct {
	DB      *gorm.DB
	Manager *submissions.Manager
	Ledger  *voting.Ledger
	config  *config.Config
}

func NewHandler(
	db *gorm.DB,
	manager *submissions.Manager,
	ledger *voting.Ledger,
	cfg *config.Config,
) Handler {
	return Handler{
		DB:      db,
		Manager: manager,
		Ledger:  ledger,
		config:  cfg,
	}
}

func NewRedisLimiter(
	redisHost string,
	limiterKey string,
	perMinute int64,
	failOpen bool,
	onlyMethod *string,
) middleware.RateLimiterConfig {
	l := logger.Logger
	var store middleware.RateLimiterStore

	redisAddr := redisHost + ":6379"
	l.Debug("Setting up rate limiter with Redis", "redis", redisAddr)
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	rdConf := &ratelimit.RedisLimiterConfig{
		PerMinute:   perMinute,
		RedisClient: rdb,
		LimiterKey:  limiterKey,
		FailOpen:    failOpen,
	}
	store = ratelimit.NewRedisLimitStore(*rdConf)

	skipper := middleware.DefaultSkipper
	if onlyMethod != nil {
		skipper = func(c echo.Context) bool {
			return c.Request().Method != *onlyMethod
		}
	}

	return middleware.RateLimiterConfig{
		Skipper: skipper,
		Store:   store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			// Anonymous reads fall back to the caller's address.
			user, ok := c.Get(servermiddleware.UserContextKey).(*models.User)
			if !ok {
				return c.RealIP(), nil
			}
			return user.ID.String(), nil
		},
		ErrorHandler: func(context echo.Context, _ error) error {
			return context.JSON(http.StatusForbidden, nil)
		},
		DenyHandler: func(context echo.Context, _ string, _ error) error {
			return context.JSON(http.StatusTooManyRequests, nil)
		},
	}
}

func (h *Handler) AddRoutes(e *echo.Echo, middlewareHandler *servermiddleware.Handler) {
	l := logger.Logger

	v1Group := e.Group("/v1")

	if h.config.RateLimit != nil && h.config.RateLimit.GlobalPerMinute > 0 {
		v1Group.Use(
			middleware.RateLimiterWithConfig(
				NewRedisLimiter(
					h.config.RateLimit.RedisHost,
					"global",
					h.config.RateLimit.GlobalPerMinute,
					h.config.RateLimit.FailOpen,
					nil,
				),
			),
		)
	} else {
		l.Warn("not configured to have a global rate limit")
	}

	adminOnly := servermiddleware.HasPermissions(
		servermiddleware.UserContextKey,
		&models.Permissions{Admin: true},
	)

	eventGroup := v1Group.Group(
		"/events/:event_id/submissions",
		servermiddleware.PopulateFromIDParam[models.Event](middlewareHandler, "event_id", "event"),
		servermiddleware.RequireEnabledEvent("event"),
	)
	eventGroup.GET("/", h.ListSubmissions, middlewareHandler.OptionalAuth())
	eventGroup.POST("/", h.CreateSubmission, middlewareHandler.RequireAuth())

	submissionGroup := v1Group.Group(
		"/submissions/:submission_id",
		servermiddleware.PopulateFromIDParam[models.Submission](
			middlewareHandler,
			"submission_id",
			"submission",
		),
	)
	submissionGroup.GET("/", h.GetSubmission, middlewareHandler.OptionalAuth())
	submissionGroup.PATCH("/", h.UpdateSubmission, middlewareHandler.RequireAuth())
	submissionGroup.DELETE("/", h.DeleteSubmission, middlewareHandler.RequireAuth())

	voteGroup := submissionGroup.Group("/vote", middlewareHandler.RequireAuth())
	if h.config.RateLimit != nil && h.config.RateLimit.VotePerMinute > 0 {
		post := http.MethodPost

		voteGroup.Use(
			middleware.RateLimiterWithConfig(
				NewRedisLimiter(
					h.config.RateLimit.RedisHost,
					"vote",
					h.config.RateLimit.VotePerMinute,
					h.config.RateLimit.FailOpen,
					&post,
				),
			),
		)
	} else {
		l.Warn("not configured to have a vote rate limit")
	}
	voteGroup.POST("/", h.CastVote)
	voteGroup.DELETE("/", h.RevokeVote)

	submissionGroup.PATCH(
		"/vote-adjustment/",
		h.AdjustVotes,
		middlewareHandler.RequireAuth(),
		adminOnly,
	)
	submissionGroup.PUT(
		"/review/",
		h.ReviewSubmission,
		middlewareHandler.RequireAuth(),
		adminOnly,
	)
}
