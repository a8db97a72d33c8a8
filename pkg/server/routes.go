package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/validkit/pkg/i18n"
)

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.cfg.logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleLive)
	r.Get("/health/ready", s.handleReady)

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.languageMiddleware())
		r.Use(contentLanguage)

		r.Get("/schemas", s.handleListSchemas)
		r.Get("/schemas/{name}", s.handleGetSchema)
		r.Post("/schemas/{name}/validate", s.handleValidate)

		r.Get("/locales", s.handleListLocales)
		r.Get("/locales/{lang}", s.handleGetLocale)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

// languageMiddleware negotiates the message language from ?lang=, the lang
// cookie or Accept-Language.
func (s *Server) languageMiddleware() func(http.Handler) http.Handler {
	extract := i18n.DefaultLangExtractor(i18n.WithSupportedLanguages(s.cfg.defaultLang))
	if s.translator != nil {
		extract = i18n.TranslatorExtractor(s.translator)
	}
	return i18n.Middleware(extract, s.cfg.defaultLang)
}
