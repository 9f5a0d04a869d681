package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/eadsgraphic/vizreport/internal/config"
	"github.com/eadsgraphic/vizreport/pkg/logger"
)

// Transport serves an http.Server on a listener.
type Transport interface {
	Serve(srv *http.Server, ln net.Listener) error
	Name() string
}

// PlainTransport serves HTTP.
type PlainTransport struct{}

func (PlainTransport) Serve(srv *http.Server, ln net.Listener) error { return srv.Serve(ln) }

func (PlainTransport) Name() string { return "http" }

// TLSTransport serves HTTPS with a certificate and key from disk.
type TLSTransport struct {
	CertFile string
	KeyFile  string
}

func (t TLSTransport) Serve(srv *http.Server, ln net.Listener) error {
	return srv.ServeTLS(ln, t.CertFile, t.KeyFile)
}

func (TLSTransport) Name() string { return "https" }

// NewTransport picks TLS when both certificate and key are configured.
func NewTransport(cfg config.TLSConfig) Transport {
	if cfg.Enabled() {
		return TLSTransport{CertFile: cfg.CertFile, KeyFile: cfg.KeyFile}
	}
	return PlainTransport{}
}

// Run listens on srv.Addr and serves until ctx is cancelled, then shuts
// down, giving in-flight requests up to grace to finish.
func Run(ctx context.Context, srv *http.Server, t Transport, grace time.Duration) error {
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}
	return serve(ctx, srv, ln, t, grace)
}

func serve(ctx context.Context, srv *http.Server, ln net.Listener, t Transport, grace time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s (%s)", ln.Addr(), t.Name())
		errCh <- t.Serve(srv, ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
