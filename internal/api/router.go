package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/tallyup/backend/internal/auth"
	"github.com/tallyup/backend/internal/metrics"
)

// NewRouter wires the HTTP routes for the server.
func NewRouter(s *Server, jwtManager *auth.JWTManager) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(RequestLogger)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(jwtManager))

			r.Get("/friends/{friendID}/balance", s.handleFriendBalance)

			r.Post("/groups", s.handleCreateGroup)
			r.Get("/groups", s.handleListGroups)
			r.Get("/groups/{groupID}", s.handleGetGroup)
			r.Put("/groups/{groupID}/members", s.handleUpdateGroupMembers)
			r.Delete("/groups/{groupID}", s.handleDeleteGroup)
			r.Get("/groups/{groupID}/debts", s.handleGroupDebts)
			r.Get("/groups/{groupID}/expenses", s.handleListGroupExpenses)

			r.Post("/expenses", s.handleCreateExpense)
			r.Delete("/expenses/{expenseID}", s.handleDeleteExpense)

			r.Post("/transfers", s.handleRecordTransfer)
			r.Delete("/transfers/{transferID}", s.handleDeleteTransfer)
		})
	})

	return r
}
