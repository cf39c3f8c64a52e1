package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/avelasquezg/chambeaya/internal/config"
	authsvc "github.com/avelasquezg/chambeaya/internal/services/auth"
	candidatessvc "github.com/avelasquezg/chambeaya/internal/services/candidates"
	interestssvc "github.com/avelasquezg/chambeaya/internal/services/interests"
	matchessvc "github.com/avelasquezg/chambeaya/internal/services/matches"
	profilessvc "github.com/avelasquezg/chambeaya/internal/services/profiles"
	swipesvc "github.com/avelasquezg/chambeaya/internal/services/swipes"
	userssvc "github.com/avelasquezg/chambeaya/internal/services/users"
	"github.com/avelasquezg/chambeaya/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService      *authsvc.Service
	UserService      *userssvc.Service
	ProfileService   *profilessvc.Service
	InterestService  *interestssvc.Service
	SwipeService     *swipesvc.Service
	MatchService     *matchessvc.Service
	CandidateService *candidatessvc.Service
	Logger           *zap.Logger
	Config           config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(deps.AuthService, deps.UserService)
	usersHandler := handlers.NewUsersHandler(deps.UserService)
	profileHandler := handlers.NewProfileHandler(deps.ProfileService)
	interestsHandler := handlers.NewInterestsHandler(deps.InterestService)
	swipeHandler := handlers.NewSwipeHandler(deps.SwipeService)
	matchesHandler := handlers.NewMatchesHandler(deps.MatchService)
	candidatesHandler := handlers.NewCandidatesHandler(deps.CandidateService)
	authMW := AuthMiddleware(deps.AuthService, deps.Logger)

	r.Get("/healthz", healthHandler.Get)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)
		r.With(authMW).Post("/auth/logout", authHandler.Logout)
		r.With(authMW).Post("/auth/logout_all", authHandler.LogoutAll)

		r.With(authMW).Get("/users/me", usersHandler.Me)
		r.With(authMW).Get("/users/{id}", usersHandler.GetByID)

		r.With(authMW).Get("/profile", profileHandler.Get)
		r.With(authMW).Put("/profile", profileHandler.Update)

		r.Get("/interests", interestsHandler.List)
		r.With(authMW).Post("/interests", interestsHandler.Create)
		r.With(authMW).Get("/interests/mine", interestsHandler.Mine)
		r.With(authMW).Post("/interests/mine", interestsHandler.Add)
		r.With(authMW).Delete("/interests/mine/{id}", interestsHandler.Remove)

		r.With(authMW).Post("/swipes", swipeHandler.Handle)
		r.With(authMW).Get("/candidates", candidatesHandler.List)
		r.With(authMW).Get("/matches", matchesHandler.List)
		r.With(authMW).Patch("/matches/{id}", matchesHandler.UpdateStatus)
	})
}
