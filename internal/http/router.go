package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"

	"github.com/nifadyev/phresh/internal/auth"
	"github.com/nifadyev/phresh/internal/cleaning"
	"github.com/nifadyev/phresh/internal/config"
	"github.com/nifadyev/phresh/internal/evaluation"
	"github.com/nifadyev/phresh/internal/feed"
	"github.com/nifadyev/phresh/internal/http/handler"
	mw "github.com/nifadyev/phresh/internal/http/middleware"
	"github.com/nifadyev/phresh/internal/offer"
	"github.com/nifadyev/phresh/internal/profile"
)

func NewRouter(cfg config.Config, db *gorm.DB, jwtSvc *auth.JWT) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	users := &auth.Directory{DB: db}
	profiles := &profile.Service{DB: db}
	cleanings := &cleaning.Service{DB: db}
	offers := &offer.Service{DB: db}
	evaluations := &evaluation.Service{DB: db, Offers: offers}
	feeds := &feed.Service{DB: db, CursorSkew: cfg.FeedCursorSkew}

	ah := &handler.AuthHandler{DB: db, JWT: jwtSvc, Profiles: profiles, BcryptCost: cfg.BcryptCost}
	r.Post("/auth/register", ah.Register)
	r.Post("/auth/login", ah.Login)

	me := &handler.MeHandler{Users: users}
	r.With(auth.RequireAuth(jwtSvc)).Get("/me", me.Me)

	ph := &handler.ProfileHandler{Svc: profiles, Users: users}
	r.Route("/profiles", func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSvc))

		r.Put("/me", ph.UpdateOwn)
		r.Get("/{username}", ph.Get)
	})

	ch := &handler.CleaningHandler{Svc: cleanings, Users: users}
	oh := &handler.OfferHandler{Svc: offers, Users: users}
	eh := &handler.EvaluationHandler{Svc: evaluations, Users: users}

	r.Route("/cleanings", func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSvc))

		r.Post("/", ch.Create)
		r.Get("/", ch.ListOwn)
		r.Get("/{id}", ch.Get)
		r.Put("/{id}", ch.Update)
		r.Delete("/{id}", ch.Delete)

		r.Route("/{id}/offers", func(r chi.Router) {
			r.Post("/", oh.Create)
			r.Get("/", oh.List)
			r.Put("/", oh.Cancel)
			r.Delete("/", oh.Rescind)
			r.Get("/{username}", oh.GetFromUser)
			r.Put("/{username}", oh.Accept)
		})

		r.Route("/{id}/evaluations/{username}", func(r chi.Router) {
			r.Post("/", eh.Create)
			r.Get("/", eh.Get)
		})
	})

	r.Route("/evaluations/{username}", func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSvc))

		r.Get("/", eh.ListForCleaner)
		r.Get("/stats", eh.Stats)
	})

	fh := &handler.FeedHandler{Svc: feeds}
	r.With(auth.RequireAuth(jwtSvc)).Get("/feed/cleanings", fh.Cleanings)

	return r
}
