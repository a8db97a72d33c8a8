package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/validkit/pkg/binder"
	"github.com/dmitrymomot/validkit/pkg/i18n"
	"github.com/dmitrymomot/validkit/pkg/logger"
	"github.com/dmitrymomot/validkit/pkg/schema"
	"github.com/dmitrymomot/validkit/pkg/validator"
)

type healthResponse struct {
	Status string `json:"status"`
}

type schemaSummary struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Fields      []string `json:"fields"`
}

type schemasResponse struct {
	Schemas []schemaSummary `json:"schemas"`
}

type localesResponse struct {
	Languages []string `json:"languages"`
	Default   string   `json:"default"`
}

type validationResponse struct {
	Valid  bool            `json:"valid"`
	Errors *validator.Tree `json:"errors,omitempty"`
}

func (s *Server) handleLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "alive"})
}

// handleReady reports ready once at least one schema is loaded.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.schemas.Len() == 0 {
		s.cfg.logger.WarnContext(r.Context(), "readiness check failed: no schemas loaded")
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "not_ready"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ready"})
}

func (s *Server) handleListSchemas(w http.ResponseWriter, _ *http.Request) {
	names := s.schemas.Names()
	resp := schemasResponse{Schemas: make([]schemaSummary, 0, len(names))}
	for _, name := range names {
		sc, _ := s.schemas.Get(name)
		resp.Schemas = append(resp.Schemas, schemaSummary{
			Name:        sc.Name(),
			Description: sc.Description(),
			Fields:      sc.Fields(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetSchema(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.schemas.Get(chi.URLParam(r, "name"))
	if !ok {
		writeError(w, http.StatusNotFound, "schema not found")
		return
	}
	writeJSON(w, http.StatusOK, sc.Definition())
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")
	sc, ok := s.schemas.Get(name)
	if !ok {
		writeError(w, http.StatusNotFound, "schema not found")
		return
	}

	start := time.Now()
	var doc any
	if err := binder.Decode(r, &doc, binder.WithMaxBodySize(s.cfg.maxBodySize)); err != nil {
		writeError(w, decodeStatus(err), err.Error())
		return
	}

	var err error
	if s.translator != nil {
		err = sc.ValidateWith(doc, s.translator.FormatterContext(ctx))
	} else {
		err = sc.Validate(doc)
	}

	s.cfg.logger.DebugContext(ctx, "document validated",
		logger.Schema(name),
		logger.Document("request"),
		logger.Language(i18n.GetLocale(ctx)),
		logger.Failures(err),
		logger.Duration(time.Since(start)),
	)

	if err == nil {
		writeJSON(w, http.StatusOK, validationResponse{Valid: true})
		return
	}
	if tree, ok := validator.AsTree(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, validationResponse{Errors: tree})
		return
	}
	if errors.Is(err, schema.ErrNotAnObject) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.cfg.logger.ErrorContext(ctx, "validation failed unexpectedly", logger.Schema(name), logger.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func decodeStatus(err error) int {
	switch {
	case errors.Is(err, binder.ErrMissingContentType), errors.Is(err, binder.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, binder.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusBadRequest
	}
}

func (s *Server) handleListLocales(w http.ResponseWriter, _ *http.Request) {
	if s.translator == nil {
		writeJSON(w, http.StatusOK, localesResponse{Languages: []string{}, Default: s.cfg.defaultLang})
		return
	}
	writeJSON(w, http.StatusOK, localesResponse{
		Languages: s.translator.Languages(),
		Default:   s.translator.DefaultLanguage(),
	})
}

// handleGetLocale serves a catalog for client-side rendering of failures.
func (s *Server) handleGetLocale(w http.ResponseWriter, r *http.Request) {
	lang := chi.URLParam(r, "lang")
	if s.translator == nil {
		writeError(w, http.StatusNotFound, (&i18n.ErrLanguageNotSupported{Lang: lang}).Error())
		return
	}
	data, err := s.translator.ExportJSON(lang)
	if err != nil {
		var notSupported *i18n.ErrLanguageNotSupported
		if errors.As(err, &notSupported) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(data))
}
