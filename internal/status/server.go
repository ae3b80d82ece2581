package status

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/saulo-duarte/quizsolver/internal/config"
)

type Server struct {
	srv *http.Server
}

func NewServer(addr string, handler http.Handler) *Server {
	return &Server{srv: &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

// Start serves in the background until ctx is done.
func (s *Server) Start(ctx context.Context) {
	log := config.WithContext(ctx)

	go func() {
		log.Infof("Status API listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Status API stopped")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("Status API shutdown failed")
		}
	}()
}
