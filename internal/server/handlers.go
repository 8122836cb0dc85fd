package server

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"FairValue/internal/display"
	"FairValue/internal/model"
	"FairValue/internal/valuation"
)

//go:embed templates/page.html
var templateFS embed.FS

type pageData struct {
	Ticker string
	Error  string
	Report *model.Report
}

type pageRenderer struct {
	tmpl *template.Template
}

func newPageRenderer(currency string) *pageRenderer {
	funcs := template.FuncMap{
		"money": func(v *float64) string { return display.Money(v, currency) },
		"rate":  display.Rate,
		"num":   display.Number,
	}
	return &pageRenderer{
		tmpl: template.Must(template.New("page.html").Funcs(funcs).ParseFS(templateFS, "templates/page.html")),
	}
}

func (p *pageRenderer) render(w http.ResponseWriter, status int, data pageData) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return p.tmpl.Execute(w, data)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleForm serves the empty ticker form.
func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	if err := s.pages.render(w, http.StatusOK, pageData{}); err != nil {
		s.log.Error().Err(err).Msg("render form")
	}
}

// handleFormSubmit values the submitted ticker and renders the report page.
func (s *Server) handleFormSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		if err := s.pages.render(w, http.StatusBadRequest, pageData{Error: "invalid form submission"}); err != nil {
			s.log.Error().Err(err).Msg("render form")
		}
		return
	}
	ticker := r.PostFormValue("ticker")

	report, err := s.valuer.Value(r.Context(), ticker)
	status := http.StatusOK
	data := pageData{Ticker: ticker, Report: report}
	switch {
	case errors.Is(err, valuation.ErrEmptyTicker):
		status = http.StatusBadRequest
		data.Error = "Please enter a ticker symbol."
	case err != nil:
		status = http.StatusInternalServerError
		data.Error = err.Error()
	default:
		data.Ticker = report.Ticker
	}
	if err := s.pages.render(w, status, data); err != nil {
		s.log.Error().Err(err).Msg("render report")
	}
}

// handleGetValuation returns the report for a ticker as JSON.
func (s *Server) handleGetValuation(w http.ResponseWriter, r *http.Request) {
	report, err := s.valuer.Value(r.Context(), chi.URLParam(r, "ticker"))
	if errors.Is(err, valuation.ErrEmptyTicker) {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("valuation failed")
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}
