package web

import (
	"embed"
	"log"
	"net/http"

	"miniview/internal/initdata"
)

//go:embed ui/*
var uiFS embed.FS

type Server struct {
	Addr    string
	DevMode bool // если true, ослабляем проверку initData для локалки
	Auth    *initdata.Verifier

	hub  *sseHub
	stop chan struct{}
}

func NewServer(auth *initdata.Verifier, addr string, dev bool) *Server {
	if addr == "" {
		addr = ":8080"
	}
	return &Server{Auth: auth, Addr: addr, DevMode: dev, hub: newHub(), stop: make(chan struct{})}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	// статика (страница-бутстрап)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		b, err := uiFS.ReadFile("ui/index.html")
		if err != nil {
			http.Error(w, "index missing", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(b)
	})
	mux.HandleFunc("/ui/app.js", func(w http.ResponseWriter, r *http.Request) {
		b, err := uiFS.ReadFile("ui/app.js")
		if err != nil {
			http.Error(w, "app missing", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/javascript")
		_, _ = w.Write(b)
	})
	mux.HandleFunc("/api/ping", s.handlePing)
	mux.HandleFunc("/api/auth", s.handleAuth)
	// SSE
	mux.HandleFunc("/sse", func(w http.ResponseWriter, r *http.Request) {
		s.hub.Subscribe(w, r)
	})
	return s.authMiddleware(mux)
}

func (s *Server) Serve() error {
	log.Printf("web: listening on %s (dev=%v)", s.Addr, s.DevMode)
	go s.statusTicker()
	return http.ListenAndServe(s.Addr, s.Handler())
}

func (s *Server) Stop() { close(s.stop) }
