package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/habitloop-io/habitloop/internal/auth"
	"github.com/habitloop-io/habitloop/internal/config"
	"github.com/habitloop-io/habitloop/internal/database"
)

type Api struct {
	Config config.Config
	Store  *database.Store
	Tokens *auth.TokenManager
	Router *chi.Mux
}

func NewApi(cfg config.Config, store *database.Store) (*Api, error) {
	api := &Api{
		Config: cfg,
		Store:  store,
		Tokens: auth.NewTokenManager(cfg.Auth.TokenSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute),
	}
	api.Router = api.routes()
	return api, nil
}

func (api *Api) routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://*.local:*", "http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	r.Get("/", api.Root)
	r.Get("/heartbeat", api.Heartbeat)

	// Public routes
	r.Post("/auth/register", api.RegisterHandler)
	r.Post("/auth/login", api.LoginHandler)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(api.Tokens))

		r.Route("/habits", func(r chi.Router) {
			r.Post("/", api.CreateHabitHandler)
			r.Get("/", api.ListHabitsHandler)
			r.Get("/{habitID}", api.GetHabitHandler)
			r.Put("/{habitID}", api.UpdateHabitHandler)
			r.Delete("/{habitID}", api.DeleteHabitHandler)
			r.Post("/{habitID}/checkin", api.CheckInHandler)
			r.Get("/{habitID}/checkins", api.ListCheckInsHandler)
			r.Get("/{habitID}/streak", api.StreakHandler)
		})

		r.Get("/stats/weekly", api.WeeklyStatsHandler)
		r.Get("/stats/monthly", api.MonthlyStatsHandler)
	})

	return r
}

func (api *Api) Serve() {
	log.Printf("Starting HabitLoop API server on 0.0.0.0:%d", api.Config.APIPort)
	log.Fatal(http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", api.Config.APIPort), api.Router))
}

func (api *Api) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"msg": "HabitLoop API"})
}

func (api *Api) Heartbeat(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// storeError maps store error kinds to transport-level responses.
func storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, database.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, database.ErrEmailTaken):
		http.Error(w, "email already registered", http.StatusConflict)
	default:
		log.Printf("storage error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
