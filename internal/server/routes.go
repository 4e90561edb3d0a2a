package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tooldeals/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			// public zone
			r.Route("/deals", func(r chi.Router) {
				r.Get("/", handler(s.getV1Deals))
				r.Get("/glitches", handler(s.getV1DealsGlitches))

				// admin zone, authentication handled by the edge proxy
				r.Post("/", handler(s.postV1Deals))
				r.Post("/purge", handler(s.postV1DealsPurge))
				r.Patch("/{id}/publish", handler(s.patchV1DealPublish))
				r.Delete("/{id}", handler(s.deleteV1Deal))
			})
			r.Get("/video", handler(s.getV1Video))
			r.Route("/subscribers", func(r chi.Router) {
				r.Post("/", handler(s.postV1Subscribers))
				r.Delete("/{email}", handler(s.deleteV1Subscriber))
			})
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
