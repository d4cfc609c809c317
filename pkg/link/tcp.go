package link

import (
	"context"
	"net"

	"github.com/golang/glog"

	fx "github.com/devtalks/devlink.go/pkg/framework"
)

// TCPServer serves links over TCP connections, one peer at a time.
type TCPServer struct {
	Addr    string
	Factory Factory
}

// Name implements Named.
func (s *TCPServer) Name() string {
	return "tcp[" + s.Addr + "]"
}

// Run implements Runnable.
func (s *TCPServer) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	glog.Infof("listening on %s", ln.Addr())
	return fx.RunWithContextCloser(ctx, ln, func() error {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return err
			}
			glog.Infof("peer connected: %s", conn.RemoteAddr())
			// connections are served sequentially: the engine
			// models a single serial peer
			if err := s.Factory(conn).Run(ctx); err != nil {
				glog.Errorf("link error: %v", err)
			}
			conn.Close()
			glog.Infof("peer disconnected: %s", conn.RemoteAddr())
		}
	})
}
