package httpapi

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/dannydang64/snowboard-store-sub000/internal/store"
)

// LocalServer runs the storefront on a loopback port for a test run. The
// runner starts one per worker so live-mode browsers and the api suite have
// a real URL to hit.
type LocalServer struct {
	BaseURL string

	srv *http.Server
	ln  net.Listener
}

func StartLocal(s *store.Store, logger *log.Logger) (*LocalServer, error) {
	h := NewHandler(s, logger)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}

	srv := &http.Server{
		Handler:           NewRouter(h),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			logger.Printf("storefront serve: %v", err)
		}
	}()

	return &LocalServer{
		BaseURL: "http://" + ln.Addr().String(),
		srv:     srv,
		ln:      ln,
	}, nil
}

func (ls *LocalServer) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return ls.srv.Shutdown(ctx)
}
