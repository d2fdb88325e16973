package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/qnkhuat/tetristerm/pkg/event"
	"github.com/qnkhuat/tetristerm/pkg/game"
	"github.com/qnkhuat/tetristerm/pkg/gui"
	"github.com/qnkhuat/tetristerm/pkg/score"
)

var (
	scoreFile string
	logFile   string
	nickname  string
	seed      int64
	themeName string
	themeFile string

	logDebug   bool
	logVerbose bool
)

func main() {
	flag.StringVar(&scoreFile, "score-file", score.DefaultFile, "path to best score file")
	flag.StringVar(&logFile, "log", "tetristerm.log", "path to log file")
	flag.StringVar(&nickname, "nick", "", "nickname, a random one when empty")
	flag.Int64Var(&seed, "seed", 0, "piece sequence seed, time based when 0")
	flag.StringVar(&themeName, "theme", gui.ThemeBasic.Name, "theme name")
	flag.StringVar(&themeFile, "theme-file", "", "JSON file with extra themes")
	flag.BoolVar(&logDebug, "debug", false, "enable debug logging")
	flag.BoolVar(&logVerbose, "verbose", false, "enable verbose logging")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		log.Fatal("failed to start tetristerm: non-interactive terminals are not supported")
	}

	err := game.InitLog(logFile, "TETRIS: ")
	if err != nil {
		log.Fatal(err)
	}

	logLevel := game.LogStandard
	if logVerbose {
		logLevel = game.LogVerbose
	} else if logDebug {
		logLevel = game.LogDebug
	}

	if nickname == "" {
		rand.Seed(time.Now().UnixNano())
		nickname = petname.Generate(2, "-")
	}

	var themes []gui.ThemeHex
	if themeFile != "" {
		themes, err = gui.LoadThemes(themeFile)
		if err != nil {
			log.Fatal(err)
		}
	}

	theme, err := gui.ImportThemes(themeName, themes)
	if err != nil {
		log.Fatalf("failed to load theme %s: %s", themeName, err)
	}

	logger := make(chan string, game.LogQueueSize)
	go func() {
		for msg := range logger {
			log.Println(msg)
		}
	}()

	draw := make(chan event.DrawObject, game.CommandQueueSize)
	events := make(chan interface{}, game.CommandQueueSize)

	store := score.NewFile(scoreFile, nickname)
	clock := game.NewClock(game.FallTime(0))

	g := game.NewGame(game.Config{
		Seed:     seed,
		Store:    store,
		Clock:    clock,
		Logger:   logger,
		LogLevel: logLevel,
		Draw:     draw,
		Event:    events,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go clock.Run(ctx, g.Tick)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc,
		syscall.SIGINT,
		syscall.SIGTERM)
	go func() {
		<-sigc

		cancel()
	}()

	log.Printf("Starting session for %s with score file %s and clock %s", nickname, store, clock)

	ui := gui.NewGUI(gui.Config{
		Session: g,
		Nick:    nickname,
		Theme:   theme,
		Draw:    draw,
		Event:   events,
	})

	g.Start()

	err = ui.Run(ctx)
	if err != nil {
		log.Fatal(err)
	}

	printSummary(g, ui.LastGameOver())
}

// printSummary runs after the terminal has been handed back. last is the
// final game over of the session, nil if none was seen.
func printSummary(g *game.Game, last *event.GameOverEvent) {
	bold := color.New(color.Bold)

	bold.Printf("%s ", nickname)
	if g.GameOver() && last != nil && last.NewBest && last.Score == g.Score() {
		color.Green("finished with a new best score of %d", g.Score())
	} else {
		color.Cyan("scored %d on level %d", g.Score(), g.Level()+1)
	}

	if g.Best() >= 0 {
		color.Yellow("Best score: %d", g.Best())
	}
}
