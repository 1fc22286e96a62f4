//go:build !windows
// +build !windows

package ssh

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os/exec"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/creack/pty"
	"github.com/gliderlabs/ssh"
	gossh "golang.org/x/crypto/ssh"
)

const (
	ServerIdleTimeout = 5 * time.Minute

	MaxNicknameLength = 16
)

// Server hosts one termtris client per SSH session, each in its own pseudo
// terminal. Sessions share nothing.
type Server struct {
	ListenAddress string
	Binary        string   // termtris client
	Args          []string // Passed to every client before -nick
	HostKeyFile   string   // Generated per run when empty

	sync.Mutex
	server *ssh.Server
}

func NewServer(listenAddress, binary, hostKeyFile string) *Server {
	return &Server{ListenAddress: listenAddress, Binary: binary, HostKeyFile: hostKeyFile}
}

// Nickname strips everything but printable non-space runes from an SSH user
// name and truncates it.
func Nickname(user string) string {
	nick := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, user)

	if r := []rune(nick); len(r) > MaxNicknameLength {
		nick = string(r[:MaxNicknameLength])
	}

	return nick
}

func (s *Server) command(ctx context.Context, user string, term string) *exec.Cmd {
	args := append([]string{}, s.Args...)
	if nick := Nickname(user); nick != "" {
		args = append(args, "-nick", nick)
	}

	cmd := exec.CommandContext(ctx, s.Binary, args...)
	cmd.Env = append(cmd.Env, fmt.Sprintf("TERM=%s", term))

	return cmd
}

func (s *Server) handle(sess ssh.Session) {
	ptyReq, winCh, isPty := sess.Pty()
	if !isPty {
		io.WriteString(sess, "failed to start termtris: non-interactive terminals are not supported\n")

		sess.Exit(1)
		return
	}

	cmdCtx, cancelCmd := context.WithCancel(sess.Context())
	defer cancelCmd()

	cmd := s.command(cmdCtx, sess.User(), ptyReq.Term)

	f, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(ptyReq.Window.Height), Cols: uint16(ptyReq.Window.Width)})
	if err != nil {
		log.Printf("Failed to start client for %s: %s", sess.RemoteAddr(), err)
		io.WriteString(sess, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))

		sess.Exit(1)
		return
	}
	defer f.Close()

	log.Printf("Session started: %s@%s", sess.User(), sess.RemoteAddr())

	go func() {
		for win := range winCh {
			pty.Setsize(f, &pty.Winsize{Rows: uint16(win.Height), Cols: uint16(win.Width)})
		}
	}()

	go func() {
		io.Copy(f, sess)
	}()
	io.Copy(sess, f)

	cancelCmd()

	status := 0
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			status = exitErr.ExitCode()
		} else {
			status = 1
		}
	}

	log.Printf("Session ended: %s@%s (%d)", sess.User(), sess.RemoteAddr(), status)

	sess.Exit(status)
}

func (s *Server) setup() (*ssh.Server, error) {
	s.Lock()
	defer s.Unlock()

	if s.server != nil {
		return s.server, nil
	}

	if s.Binary == "" {
		return nil, errors.New("failed to start SSH server: client binary must be specified")
	}

	server := &ssh.Server{
		Addr:        s.ListenAddress,
		IdleTimeout: ServerIdleTimeout,
		Handler:     s.handle,
		PtyCallback: func(ctx ssh.Context, pty ssh.Pty) bool {
			return true
		},
		PublicKeyHandler: func(ctx ssh.Context, key ssh.PublicKey) bool {
			return true
		},
		PasswordHandler: func(ctx ssh.Context, password string) bool {
			return true
		},
		KeyboardInteractiveHandler: func(ctx ssh.Context, challenger gossh.KeyboardInteractiveChallenge) bool {
			return true
		},
	}

	if s.HostKeyFile != "" {
		if err := server.SetOption(ssh.HostKeyFile(s.HostKeyFile)); err != nil {
			return nil, fmt.Errorf("failed to load host key %s: %w", s.HostKeyFile, err)
		}
	}

	s.server = server

	return server, nil
}

func (s *Server) ListenAndServe() error {
	if s.ListenAddress == "" {
		return errors.New("failed to start SSH server: listen address must be specified")
	}

	l, err := net.Listen("tcp", s.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.ListenAddress, err)
	}

	return s.Serve(l)
}

// Serve accepts sessions on l until Shutdown. It returns nil after a
// shutdown.
func (s *Server) Serve(l net.Listener) error {
	server, err := s.setup()
	if err != nil {
		l.Close()
		return err
	}

	log.Printf("Listening for SSH connections on %s", l.Addr())

	err = server.Serve(l)
	if errors.Is(err, ssh.ErrServerClosed) {
		return nil
	}

	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.Lock()
	server := s.server
	s.Unlock()

	if server == nil {
		return nil
	}

	return server.Shutdown(ctx)
}
