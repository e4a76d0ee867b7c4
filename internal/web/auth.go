package web

import (
	"net/http"
	"strings"
)

// initDataFrom ищет initData: заголовок X-TG-Init-Data или query ?initData=...
func initDataFrom(r *http.Request) string {
	if v := r.Header.Get("X-TG-Init-Data"); v != "" {
		return v
	}
	return r.URL.Query().Get("initData")
}

// authMiddleware закрывает /api/* и /sse; статика и /api/auth открыты
// (страница должна получить вердикт и показать баннер сама).
// Разные статусы различают мусор (400), подделку и протухшую метку (401).
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" || strings.HasPrefix(r.URL.Path, "/ui/") || r.URL.Path == "/api/auth" {
			next.ServeHTTP(w, r)
			return
		}
		if s.DevMode || s.Auth.Token == "" {
			// Локальная разработка без проверки
			next.ServeHTTP(w, r)
			return
		}
		raw := initDataFrom(r)
		ok, err := s.Auth.Verify(raw)
		if err != nil {
			http.Error(w, "bad init data", http.StatusBadRequest)
			return
		}
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		fresh, err := s.Auth.IsRecent(raw)
		if err != nil {
			http.Error(w, "bad init data", http.StatusBadRequest)
			return
		}
		if !fresh {
			http.Error(w, "stale init data", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
