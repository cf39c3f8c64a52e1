package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/avelasquezg/chambeaya/internal/config"
	pgrepo "github.com/avelasquezg/chambeaya/internal/repo/postgres"
	redrepo "github.com/avelasquezg/chambeaya/internal/repo/redis"
	authsvc "github.com/avelasquezg/chambeaya/internal/services/auth"
	candidatessvc "github.com/avelasquezg/chambeaya/internal/services/candidates"
	interestssvc "github.com/avelasquezg/chambeaya/internal/services/interests"
	matchessvc "github.com/avelasquezg/chambeaya/internal/services/matches"
	profilessvc "github.com/avelasquezg/chambeaya/internal/services/profiles"
	ratesvc "github.com/avelasquezg/chambeaya/internal/services/rate"
	swipesvc "github.com/avelasquezg/chambeaya/internal/services/swipes"
	userssvc "github.com/avelasquezg/chambeaya/internal/services/users"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	sessionRepo := redrepo.NewSessionRepo(redisClient)
	rateRepo := redrepo.NewRateRepo(redisClient)
	userRepo := pgrepo.NewUserRepo(pool)
	profileRepo := pgrepo.NewProfileRepo(pool)
	interestRepo := pgrepo.NewInterestRepo(pool)
	swipeRepo := pgrepo.NewSwipeRepo(pool)
	matchRepo := pgrepo.NewMatchRepo(pool)

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	authService := authsvc.NewService(jwtManager, sessionRepo, cfg.Auth.RefreshTTL)
	userService := userssvc.NewService(userRepo, profileRepo)
	interestService := interestssvc.NewService(interestRepo)
	profileService := profilessvc.NewService(profileRepo, interestRepo)
	rateLimiter := ratesvc.NewLimiter(
		rateRepo,
		cfg.Limits.SwipesPerSec,
		cfg.Limits.SwipesPer10Sec,
		cfg.Limits.SwipesPerMin,
	)
	swipeService := swipesvc.NewService(swipesvc.Dependencies{
		Pool:        pool,
		Users:       userRepo,
		SwipeStore:  swipeRepo,
		MatchStore:  matchRepo,
		RateLimiter: rateLimiter,
	})
	matchService := matchessvc.NewService(matchRepo, cfg.Limits.MatchesLimit)
	candidateService := candidatessvc.NewService(userRepo, swipeRepo, profileRepo, interestRepo, cfg.Limits.CandidatesLimit)

	if pool != nil && len(cfg.Seed.Interests) > 0 {
		if err := interestService.EnsureDefaults(ctx, cfg.Seed.Interests); err != nil {
			log.Warn("interest catalog seeding failed", zap.Error(err))
		}
	}

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	RegisterRoutes(r, Dependencies{
		AuthService:      authService,
		UserService:      userService,
		ProfileService:   profileService,
		InterestService:  interestService,
		SwipeService:     swipeService,
		MatchService:     matchService,
		CandidateService: candidateService,
		Logger:           log,
		Config:           cfg,
	})

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
