// Package ws serves links over websocket, so browser consoles and
// remote harnesses can reach the engine without a serial adapter.
package ws

import (
	"context"
	"net/http"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	fx "github.com/devtalks/devlink.go/pkg/framework"
	"github.com/devtalks/devlink.go/pkg/link"
)

// DefaultPath is the endpoint path serving the link.
const DefaultPath = "/link"

// Server serves one link per websocket connection. websocket.Conn is
// an io.ReadWriter, so the engine runs on it directly.
type Server struct {
	Addr    string
	Path    string
	Factory link.Factory
}

// Name implements Named.
func (s *Server) Name() string {
	return "ws[" + s.Addr + "]"
}

// Run implements Runnable.
func (s *Server) Run(ctx context.Context) error {
	path := s.Path
	if path == "" {
		path = DefaultPath
	}
	mux := http.NewServeMux()
	mux.Handle(path, websocket.Handler(func(conn *websocket.Conn) {
		glog.Infof("peer connected: %s", conn.Request().RemoteAddr)
		if err := s.Factory(conn).Run(ctx); err != nil {
			glog.Errorf("link error: %v", err)
		}
		glog.Infof("peer disconnected: %s", conn.Request().RemoteAddr)
	}))
	srv := &http.Server{Addr: s.Addr, Handler: mux}
	glog.Infof("listening on ws://%s%s", s.Addr, path)
	err := fx.RunWithContextCloser(ctx, srv, func() error {
		return srv.ListenAndServe()
	})
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Dial connects to a served link.
func Dial(url, origin string) (*websocket.Conn, error) {
	return websocket.Dial(url, "", origin)
}
