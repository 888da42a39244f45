package web

import (
	"encoding/json"
	"html/template"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/JulianZulFont/AppDash-2/internal/domain"
	"go.uber.org/zap"
)

// Templates
var templates *template.Template

func InitTemplates(dir string) error {
	var err error
	templates, err = template.ParseGlob(filepath.Join(dir, "*.html"))
	return err
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := map[string]interface{}{
		"Coins":   domain.Coins,
		"Periods": domain.Periods,
	}

	if err := templates.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.Error("Template error", zap.Error(err))
		http.Error(w, "Internal Server Error", 500)
	}
}

func (s *Server) handleSymbols(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"coins":   domain.Coins,
		"periods": domain.Periods,
	})
}

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		http.Error(w, "missing symbol", http.StatusBadRequest)
		return
	}

	view := s.service.Quote(r.Context(), symbol)
	s.writeJSON(w, view)
}

func (s *Server) handleCandles(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		http.Error(w, "missing symbol", http.StatusBadRequest)
		return
	}

	days, err := strconv.Atoi(r.URL.Query().Get("period"))
	if err != nil {
		http.Error(w, "invalid period", http.StatusBadRequest)
		return
	}

	view := s.service.History(r.Context(), symbol, days)
	s.writeJSON(w, view)
}

func (s *Server) handleCountdown(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]int{"seconds": s.countdown.CountdownSeconds()})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("<div>System OK</div>"))
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}
