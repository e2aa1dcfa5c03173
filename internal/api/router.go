package api

import (
	"net/http"

	"github.com/dom/league-ledger/internal/api/handlers"
	"github.com/dom/league-ledger/internal/api/middleware"
	"github.com/dom/league-ledger/internal/config"
	"github.com/dom/league-ledger/internal/service"
	"github.com/dom/league-ledger/internal/websocket"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
)

func NewRouter(services *service.Services, hub *websocket.Hub, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RequestLogger(log.Logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-Id"},
	}).Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authHandler := handlers.NewAuthHandler(services.Auth)
	leagueHandler := handlers.NewLeagueHandler(services.League)
	teamHandler := handlers.NewTeamHandler(services.Team)
	prospectHandler := handlers.NewProspectHandler(services.Prospect)
	draftHandler := handlers.NewDraftHandler(services.Draft)
	tradeHandler := handlers.NewTradeHandler(services.Trade)
	groupHandler := handlers.NewGroupHandler(services.Group)
	expenseHandler := handlers.NewExpenseHandler(services.Expense)
	wsHandler := handlers.NewWebSocketHandler(hub, services.League, cfg.CORSOrigins)

	requireAuth := middleware.Auth(services.Auth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Draft manager routes are open.
		r.Route("/leagues", func(r chi.Router) {
			r.Get("/", leagueHandler.List)
			r.Post("/", leagueHandler.Create)
			r.Get("/{id}", leagueHandler.Get)
			r.Put("/{id}", leagueHandler.Update)
			r.Delete("/{id}", leagueHandler.Delete)
			r.Post("/{id}/initialize", leagueHandler.Initialize)
			r.Get("/{id}/feed", wsHandler.Feed)
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", teamHandler.List)
			r.Get("/{id}", teamHandler.Get)
			r.Put("/{id}", teamHandler.Update)
			r.Delete("/{id}", teamHandler.Delete)
			r.Get("/{id}/roster", teamHandler.Roster)
		})

		r.Route("/prospects", func(r chi.Router) {
			r.Get("/", prospectHandler.List)
			r.Post("/", prospectHandler.Create)
			r.Post("/bulk", prospectHandler.CreateBulk)
			r.Get("/{id}", prospectHandler.Get)
			r.Put("/{id}", prospectHandler.Update)
			r.Delete("/{id}", prospectHandler.Delete)
		})

		r.Route("/draft", func(r chi.Router) {
			r.Get("/picks", draftHandler.ListPicks)
			r.Get("/picks/{id}", draftHandler.GetPick)
			r.Get("/current", draftHandler.Current)
			r.Post("/execute", draftHandler.Execute)
			r.Post("/undraft", draftHandler.Undraft)
		})

		r.Route("/trades", func(r chi.Router) {
			r.Get("/", tradeHandler.List)
			r.Post("/", tradeHandler.Execute)
			r.Get("/{id}", tradeHandler.Get)
			r.Delete("/{id}", tradeHandler.Delete)
		})

		// Expense ledger
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Route("/groups", func(r chi.Router) {
				r.Get("/", groupHandler.List)
				r.Post("/", groupHandler.Create)
				r.Get("/{id}", groupHandler.Get)
				r.Post("/{id}/members", groupHandler.AddMember)
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Get("/", expenseHandler.List)
				r.Post("/", expenseHandler.Create)
				r.Get("/balances", expenseHandler.Balances)
				r.Post("/settle", expenseHandler.Settle)
			})
		})
	})

	return r
}
