package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/Hsooooo/ai-headsup-holdem/internal/auth"
	"github.com/Hsooooo/ai-headsup-holdem/internal/bot"
	"github.com/Hsooooo/ai-headsup-holdem/internal/evaluator"
	"github.com/Hsooooo/ai-headsup-holdem/internal/game"
	"github.com/Hsooooo/ai-headsup-holdem/internal/history"
	"github.com/Hsooooo/ai-headsup-holdem/internal/server"
)

// ServeCmd runs the game server.
type ServeCmd struct {
	Config     string   `kong:"help='Path to HCL config file',type='path'"`
	Debug      bool     `kong:"help='Enable debug logging'"`
	AutoCreate bool     `kong:"help='Create a game on startup and log its ID'"`
	BotSeats   []string `kong:"name='bot-seat',help='Seats to fill with built-in bots (a, b)'"`
}

func (c *ServeCmd) Run() error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := setupLogger(cfg.Server.LogLevel, c.Debug)

	bus := server.NewEventBus()
	store := history.NewMemoryStore()
	timeout := time.Duration(cfg.Game.ActionTimeoutMs) * time.Millisecond
	service := server.NewGameService(logger, cfg.GameConfig(), evaluator.New(), bus, store, quartz.NewReal(), timeout)
	defer service.Stop()

	resolver := auth.NewStaticResolver(cfg.Auth.TokenA, cfg.Auth.TokenB)
	srv := server.NewServer(cfg.Addr(), logger, service, resolver)

	logger.Info("Starting heads-up hold'em server",
		"addr", cfg.Addr(),
		"small_blind", cfg.Game.SmallBlind,
		"big_blind", cfg.Game.BigBlind,
		"starting_stack", cfg.Game.StartingStack,
		"action_timeout", timeout,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	if c.AutoCreate || len(c.BotSeats) > 0 {
		sess := service.CreateGame()
		logger.Info("Auto-created game", "game", sess.ID())

		for _, name := range c.BotSeats {
			seat, err := game.ParseSeat(name)
			if err != nil {
				return fmt.Errorf("bad --bot-seat %q: %w", name, err)
			}
			events, cancel := bus.Subscribe(sess.ID())
			b := bot.New(sess, seat, logger)
			g.Go(func() error {
				defer cancel()
				b.Run(ctx, events)
				return nil
			})
		}
	}

	g.Go(func() error {
		return srv.Start(ctx)
	})

	return g.Wait()
}

func setupLogger(level string, debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
		return logger
	}
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}
