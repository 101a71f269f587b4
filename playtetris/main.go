package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/JoelOtter/termloop"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	tetris "github.com/jauhararifin/sealedtris"
	"github.com/jauhararifin/sealedtris/scoreboard"
)

func main() {
	width := flag.Int("width", 10, "board width")
	height := flag.Int("height", 20, "board height")
	interval := flag.Duration("interval", tetris.DefaultInterval, "gravity interval")
	seed := flag.Int64("seed", 0, "shape seed, 0 picks one from the clock")
	player := flag.String("player", "", "player id, generated when empty")
	server := flag.String("server", "", "score service url, submission is disabled when empty")
	logPath := flag.String("log", "", "log file")
	flag.Parse()

	logger := log.New(io.Discard, "", log.LstdFlags)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("cannot open log file: %v", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	if *player == "" {
		*player = uuid.NewString()
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	logger.Printf("player=%s seed=%d\n", *player, *seed)

	var client *scoreboard.Client
	if *server != "" {
		client = scoreboard.NewClient(*server, *player, scoreboard.WithLogger(logger))
	}

	game := tetris.NewGame(
		tetris.WithSize(*width, *height),
		tetris.WithGetter(tetris.NewRandomGetter(*seed)),
		tetris.WithGameOverHandler(tetris.GameOverHandlerFunc(func(score int) {
			logger.Printf("game over: score=%d\n", score)
		})),
	)
	boardEntity := NewBoardPlayer(0, 0, *width, *height, client, logger)
	runner := tetris.NewRunner(game,
		tetris.WithInterval(*interval),
		tetris.WithStateHandler(boardEntity),
	)
	boardEntity.runner = runner

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := runner.Run(ctx); err != nil && err != context.Canceled {
			logger.Printf("runner stopped: %v\n", err)
		}
	}()

	tl := termloop.NewGame()
	level := termloop.NewBaseLevel(termloop.Cell{})
	level.AddEntity(boardEntity)
	tl.Screen().SetLevel(level)
	tl.Start()
}

type boardPlayer struct {
	runner              *tetris.Runner
	client              *scoreboard.Client
	logger              *log.Logger
	x, y, width, height int

	m          sync.Mutex
	state      tetris.State
	status     string
	submitting bool

	scoreText  *termloop.Text
	linesText  *termloop.Text
	statusText *termloop.Text
	helpText   *termloop.Text
}

func NewBoardPlayer(x, y, width, height int, client *scoreboard.Client, logger *log.Logger) *boardPlayer {
	return &boardPlayer{
		client: client,
		logger: logger,
		width:  width,
		height: height,
		x:      x,
		y:      y,
		status: "press enter to start",

		scoreText:  termloop.NewText(x+width+3, y+8, "", termloop.ColorWhite, termloop.ColorDefault),
		linesText:  termloop.NewText(x+width+3, y+9, "", termloop.ColorWhite, termloop.ColorDefault),
		statusText: termloop.NewText(x+width+3, y+11, "", termloop.ColorYellow, termloop.ColorDefault),
		helpText:   termloop.NewText(x+width+3, y+13, "arrows move, space drop, s submit, h history", termloop.ColorWhite, termloop.ColorDefault),
	}
}

func (b *boardPlayer) OnState(state tetris.State) {
	b.m.Lock()
	defer b.m.Unlock()

	if state.Phase == tetris.PhaseGameOver && b.state.Phase != tetris.PhaseGameOver {
		b.status = "game over, s to submit, enter to restart"
	} else if state.Phase == tetris.PhaseRunning && b.state.Phase != tetris.PhaseRunning {
		b.status = ""
	}
	b.state = state
}

func (b *boardPlayer) setStatus(format string, args ...interface{}) {
	b.m.Lock()
	defer b.m.Unlock()
	b.status = fmt.Sprintf(format, args...)
}

func (b *boardPlayer) snapshot() (tetris.State, string) {
	b.m.Lock()
	defer b.m.Unlock()
	return b.state, b.status
}

func (b *boardPlayer) Tick(ev termloop.Event) {
	if ev.Type != termloop.EventKey || b.runner == nil {
		return
	}

	var action tetris.Action
	switch ev.Key {
	case termloop.KeyArrowLeft:
		action = tetris.ActionGoLeft
	case termloop.KeyArrowRight:
		action = tetris.ActionGoRight
	case termloop.KeyArrowUp:
		action = tetris.ActionRotate
	case termloop.KeyArrowDown:
		action = tetris.ActionSoftDrop
	case termloop.KeySpace:
		action = tetris.ActionSmash
	case termloop.KeyEnter:
		state, _ := b.snapshot()
		action = tetris.ActionStart
		if state.Phase == tetris.PhaseGameOver {
			action = tetris.ActionRestart
		}
	default:
		switch ev.Ch {
		case 's':
			b.submit()
		case 'h':
			b.history()
		}
		return
	}

	if !b.runner.TrySend(action) {
		b.logger.Printf("command queue full, dropped %v\n", action)
	}
}

func (b *boardPlayer) submit() {
	if b.client == nil {
		b.setStatus("no score server configured")
		return
	}

	b.m.Lock()
	state := b.state
	if b.submitting {
		b.m.Unlock()
		return
	}
	if _, err := state.FinalScore(); err != nil {
		b.m.Unlock()
		return
	}
	b.submitting = true
	b.status = "submitting..."
	b.m.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		receipt, err := scoreboard.Report(ctx, state, b.client)

		b.m.Lock()
		defer b.m.Unlock()
		b.submitting = false
		if err != nil {
			b.logger.Printf("cannot submit score: %v\n", err)
			b.status = "submit failed: " + err.Error()
			return
		}
		b.status = "submitted " + receipt.ID
	}()
}

func (b *boardPlayer) history() {
	if b.client == nil {
		b.setStatus("no score server configured")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		handles, err := b.client.ScoreHistory(ctx)
		if err != nil {
			b.logger.Printf("cannot load score history: %v\n", err)
			b.setStatus("history failed: %v", err)
			return
		}

		revealed := 0
		for _, h := range handles {
			if h.Revealed {
				revealed++
			}
		}
		b.setStatus("%d scores stored, %d revealed", len(handles), revealed)
	}()
}

var shapeColors = map[string]termloop.Attr{
	"cyan":   termloop.ColorCyan,
	"orange": termloop.ColorWhite,
	"blue":   termloop.ColorBlue,
	"yellow": termloop.ColorYellow,
	"red":    termloop.ColorRed,
	"green":  termloop.ColorGreen,
	"purple": termloop.ColorMagenta,
}

func cellColor(c tetris.Cell) termloop.Attr {
	if int(c) < len(tetris.Colors) {
		if attr, ok := shapeColors[tetris.Colors[c]]; ok {
			return attr
		}
	}
	return termloop.ColorWhite
}

func (b *boardPlayer) Draw(s *termloop.Screen) {
	state, status := b.snapshot()

	border := &termloop.Cell{
		Fg: termloop.ColorWhite,
		Bg: termloop.ColorBlack,
		Ch: '+',
	}
	for i := 0; i < b.width+2; i++ {
		s.RenderCell(b.x+i, b.y, border)
		s.RenderCell(b.x+i, b.y+b.height+1, border)
	}
	for i := 0; i < b.height+2; i++ {
		s.RenderCell(b.x, b.y+i, border)
		s.RenderCell(b.x+b.width+1, b.y+i, border)
	}

	for i := 0; i < 6; i++ {
		s.RenderCell(b.x+b.width+3+i, b.y, border)
		s.RenderCell(b.x+b.width+3+i, b.y+5, border)
		s.RenderCell(b.x+b.width+3, b.y+i, border)
		s.RenderCell(b.x+b.width+8, b.y+i, border)
	}

	b.scoreText.SetText("Score: " + humanize.Comma(int64(state.Score)))
	b.scoreText.Draw(s)
	b.linesText.SetText("Lines: " + humanize.Comma(int64(state.Lines)))
	b.linesText.Draw(s)
	b.statusText.SetText(status)
	b.statusText.Draw(s)
	b.helpText.Draw(s)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			cell := &termloop.Cell{Fg: termloop.ColorWhite, Bg: termloop.ColorBlack}
			if y < state.Next.Rows() && x < state.Next.Cols() && state.Next.At(y, x) != tetris.CellEmpty {
				cell.Fg = cellColor(state.Next.ID())
				cell.Ch = '@'
			}
			s.RenderCell(b.x+b.width+4+x, b.y+1+y, cell)
		}
	}

	frame := state.Frame()
	for y := 0; y < b.height && y < len(frame); y++ {
		for x := 0; x < b.width && x < len(frame[y]); x++ {
			cell := &termloop.Cell{Fg: termloop.ColorWhite, Bg: termloop.ColorBlack}
			if c := frame[y][x]; c != tetris.CellEmpty {
				cell.Fg = cellColor(c)
				cell.Ch = '#'
			}
			s.RenderCell(b.x+1+x, b.y+1+y, cell)
		}
	}
}
