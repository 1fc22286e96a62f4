package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/qnkhuat/termtris/pkg"
	"github.com/qnkhuat/termtris/pkg/game"
	"github.com/qnkhuat/termtris/pkg/gui"
)

var (
	seed        int64
	startLevel  int
	width       int
	height      int
	buffer      int
	wallKick    bool
	themeName   string
	nickname    string
	startMatrix string
	logPath     string

	logDebug   bool
	logVerbose bool
)

func init() {
	log.SetFlags(0)

	rules := game.DefaultRules()

	flag.Int64Var(&seed, "seed", 0, "piece sequence seed (random when 0)")
	flag.IntVar(&startLevel, "level", rules.StartLevel, "starting level")
	flag.IntVar(&width, "width", rules.Width, "matrix width")
	flag.IntVar(&height, "height", rules.Height, "matrix height")
	flag.IntVar(&buffer, "buffer", rules.Buffer, "hidden rows above the matrix")
	flag.BoolVar(&wallKick, "wallkick", false, "try kicking blocked rotations away from walls")
	flag.StringVar(&themeName, "theme", "", "theme name or path to a JSON theme file")
	flag.StringVar(&nickname, "nick", "", "nickname")
	flag.StringVar(&startMatrix, "matrix", "", "pre-fill matrix with garbage (x,y,x,y...)")
	flag.StringVar(&logPath, "log", "", "path to log file")
	flag.BoolVar(&logDebug, "debug", false, "enable debug logging")
	flag.BoolVar(&logVerbose, "verbose", false, "enable verbose logging")
}

func gameRules() game.Rules {
	r := game.DefaultRules()
	r.StartLevel = startLevel
	r.Width = width
	r.Height = height
	r.Buffer = buffer
	if wallKick {
		r.Kicks = game.DefaultKicks
	}

	return r
}

func main() {
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		log.Fatal("failed to start termtris: non-interactive terminals are not supported")
	}

	logFile, err := pkg.InitLog(logPath, "CLIENT: ")
	if err != nil {
		log.Fatalf("failed to initialize log: %s", err)
	}
	defer logFile.Close()

	logLevel := game.LogStandard
	if logVerbose {
		logLevel = game.LogVerbose
	} else if logDebug {
		logLevel = game.LogDebug
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	if nickname == "" {
		nickname = petname.Generate(2, "-")
	}

	theme, err := gui.LoadTheme(themeName)
	if err != nil {
		log.Fatalf("failed to start termtris: %s", err)
	}

	g, err := game.NewGame(gameRules(), seed)
	if err != nil {
		log.Fatalf("failed to start termtris: %s", err)
	}
	g.Name = nickname
	g.Logger = log.Default()
	g.LogLevel = logLevel

	if err := g.Matrix.Prefill(startMatrix); err != nil {
		log.Fatalf("failed to start termtris: %s", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ui := gui.NewGUI(theme)

	defer func() {
		if r := recover(); r != nil {
			ui.Stop()
			time.Sleep(100 * time.Millisecond)

			log.SetOutput(os.Stderr)
			debug.PrintStack()
			log.Fatalf("panic: %+v", r)
		}
	}()

	uiErr := make(chan error, 1)
	go func() {
		uiErr <- ui.Run()
		cancel()
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc,
		syscall.SIGINT,
		syscall.SIGTERM)
	go func() {
		select {
		case <-sigc:
			cancel()
		case <-ctx.Done():
		}
	}()

	g.Logf(game.LogStandard, "Starting %s with seed %d", nickname, seed)

	loop := game.NewLoop(g, ui, ui, game.RealTimeProvider{})
	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		g.Logf(game.LogStandard, "Game loop failed: %s", err)
	}

	if g.Over() {
		select {
		case <-ui.Done():
		case <-ctx.Done():
		}
	}

	ui.Stop()
	if err := <-uiErr; err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("failed to run application: %s", err)
	}

	printSummary(g)
}

func printSummary(g *game.Game) {
	title := color.New(color.FgCyan, color.Bold)
	label := color.New(color.FgWhite)
	value := color.New(color.FgYellow, color.Bold)

	if g.Over() {
		title.Println("Game over")
	} else {
		title.Println("Game ended")
	}

	for _, stat := range []struct {
		name  string
		value int
	}{
		{"Score", g.Score},
		{"Lines", g.Lines},
		{"Level", g.Level},
		{"Pieces", g.Pieces},
	} {
		label.Printf("%-8s", stat.name)
		value.Printf("%d\n", stat.value)
	}
}
