package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/qnkhuat/termtris/pkg"
	"github.com/qnkhuat/termtris/pkg/ssh"
)

const (
	SshPort         = ":2222"
	ShutdownTimeout = 10 * time.Second
)

var (
	listenAddressSSH string
	termtrisBinary   string
	hostKeyFile      string
	logPath          string

	done = make(chan bool)
)

func init() {
	log.SetFlags(0)

	flag.StringVar(&listenAddressSSH, "listen-ssh", SshPort, "host SSH server on network address")
	flag.StringVar(&termtrisBinary, "termtris", "", "path to termtris client (defaults to termtris next to this binary)")
	flag.StringVar(&hostKeyFile, "hostkey", "", "path to SSH host key (generated when empty)")
	flag.StringVar(&logPath, "log", "", "path to log file (stderr when empty)")
}

func defaultBinary() string {
	exe, err := os.Executable()
	if err != nil {
		return "termtris"
	}

	return filepath.Join(filepath.Dir(exe), "termtris")
}

func main() {
	flag.Parse()

	if logPath != "" {
		logFile, err := pkg.InitLog(logPath, "SERVER: ")
		if err != nil {
			log.Fatalf("failed to initialize log: %s", err)
		}
		defer logFile.Close()
	} else {
		log.SetFlags(log.LstdFlags)
		log.SetPrefix("SERVER: ")
	}

	if termtrisBinary == "" {
		termtrisBinary = defaultBinary()
	}
	if _, err := os.Stat(termtrisBinary); err != nil {
		log.Fatalf("failed to find termtris client: %s", err)
	}

	server := ssh.NewServer(listenAddressSSH, termtrisBinary, hostKeyFile)

	go func() {
		if err := server.ListenAndServe(); err != nil {
			log.Fatalf("failed to serve SSH: %s", err)
		}

		done <- true
	}()

	color.New(color.FgGreen, color.Bold).Printf("termtris ")
	color.New(color.FgWhite).Printf("serving %s on ", filepath.Base(termtrisBinary))
	color.New(color.FgCyan).Printf("%s\n", listenAddressSSH)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc,
		syscall.SIGINT,
		syscall.SIGTERM)
	go func() {
		<-sigc

		ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Printf("Failed to shut down: %s", err)
		}
	}()

	<-done

	log.Println("Server stopped")
}
