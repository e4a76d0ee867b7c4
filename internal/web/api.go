package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"miniview/internal/initdata"
)

// GET/POST /api/auth -> {"sig_ok":bool,"fresh":bool}
// Структурные ошибки отдаём как 400 с именем ошибки: страница различает
// «не initData вообще» и «подпись не сошлась».
func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	raw := initDataFrom(r)

	sigOK, err := s.Auth.Verify(raw)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	fresh, err := s.Auth.IsRecent(raw)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"sig_ok": sigOK, "fresh": fresh})
}

func writeAuthError(w http.ResponseWriter, err error) {
	reason := "malformed"
	switch {
	case errors.Is(err, initdata.ErrNoHash):
		reason = "no_hash"
	case errors.Is(err, initdata.ErrNoAuthDate):
		reason = "no_auth_date"
	}
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": reason})
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
}
