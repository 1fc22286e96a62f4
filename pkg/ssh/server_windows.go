//go:build windows
// +build windows

package ssh

import (
	"context"
	"errors"
	"net"
)

// SSH server is unsupported on Windows

var ErrUnsupported = errors.New("SSH server is not supported on windows")

type Server struct {
	ListenAddress string
	Binary        string
	Args          []string
	HostKeyFile   string
}

func NewServer(listenAddress, binary, hostKeyFile string) *Server {
	return &Server{ListenAddress: listenAddress, Binary: binary, HostKeyFile: hostKeyFile}
}

func (s *Server) ListenAndServe() error {
	return ErrUnsupported
}

func (s *Server) Serve(l net.Listener) error {
	l.Close()
	return ErrUnsupported
}

func (s *Server) Shutdown(ctx context.Context) error {
	return nil
}
