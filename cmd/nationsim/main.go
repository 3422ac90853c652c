// Command nationsim plays a nation-management game: it resumes or starts a
// game, runs the simulation under an autopilot or the HTTP API and records
// the final score.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/google/uuid"

	"github.com/younisbosefi/younosomy/internal/api"
	"github.com/younisbosefi/younosomy/internal/atlas"
	"github.com/younisbosefi/younosomy/internal/config"
	"github.com/younisbosefi/younosomy/internal/engine"
	"github.com/younisbosefi/younosomy/internal/entropy"
	"github.com/younisbosefi/younosomy/internal/persistence"
	"github.com/younisbosefi/younosomy/internal/state"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if err := run(cfg); err != nil {
		slog.Error("nationsim failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	// ── Database ──────────────────────────────────────────────────────
	if cfg.DB.Dialect == persistence.SQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DB.SQLitePath), 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := persistence.Open(cfg.DB.Dialect, cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	// ── Randomness ────────────────────────────────────────────────────
	var src entropy.Source
	if client := entropy.NewClient(cfg.RandomOrgKey); client != nil {
		slog.Info("using random.org for randomness")
		src = client
	} else {
		seed := cfg.Seed
		if seed == 0 {
			if seed, err = entropy.NewSeed(); err != nil {
				return err
			}
		}
		slog.Info("seeded randomness", "seed", seed)
		if err := db.SaveMeta("seed:"+cfg.Country, strconv.FormatInt(seed, 10)); err != nil {
			slog.Warn("failed to record seed", "error", err)
		}
		src = entropy.NewSeeded(seed)
	}
	env := state.NewEnv(src)

	// ── Load or start a game ──────────────────────────────────────────
	s, err := loadOrStart(db, cfg, env)
	if err != nil {
		return err
	}

	sess := engine.NewSession(s, env)
	if err := sess.SetSpeed(cfg.Speed); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	if cfg.API.Port > 0 {
		srv := &api.Server{Session: sess, DB: db, Port: cfg.API.Port, AdminKey: cfg.API.AdminKey}
		srv.Start()
	}

	drv := engine.NewDriver(sess)
	drv.Interval = cfg.Interval
	var pilot *autopilot
	if cfg.Autopilot {
		pilot = &autopilot{sess: sess, lastReview: s.CurrentDay}
		pilot.attach(drv)
	}

	lastSave := s.CurrentDay
	drv.OnDay = func(now state.WorldState) {
		if pilot != nil {
			pilot.review(now)
		}
		if cfg.AutosaveDays > 0 && now.CurrentDay-lastSave >= cfg.AutosaveDays {
			lastSave = now.CurrentDay
			if err := db.SaveGame(now, env.Now()); err != nil {
				slog.Error("autosave failed", "error", err)
			}
		}
		if cfg.MaxDays > 0 && now.CurrentDay-s.CurrentDay >= cfg.MaxDays {
			slog.Info("day limit reached", "days", cfg.MaxDays)
			cancel()
		}
	}
	drv.OnFinish = func(final state.WorldState) {
		fmt.Printf("\n%s: %s after %s. Final score %.1f.\n",
			final.Country.Name, final.Outcome, engine.Calendar(final.CurrentDay), final.Score)
	}

	fmt.Printf("\nLeading %s, %s of %d.\n", s.Country.Name, engine.Calendar(s.CurrentDay), s.TotalDays/engine.DaysPerYear)
	fmt.Println("Starting simulation... (Ctrl+C to stop)")

	if err := drv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return finish(db, sess.State(), env)
}

// loadOrStart resumes the saved game for the configured country when there
// is one still in progress.
func loadOrStart(db *persistence.DB, cfg config.Config, env *state.Env) (state.WorldState, error) {
	if cfg.Resume {
		s, err := db.LoadGame(cfg.Country)
		switch {
		case err == nil && !s.Over():
			slog.Info("resuming saved game", "game", s.GameID, "when", engine.Calendar(s.CurrentDay))
			return s, nil
		case err != nil && !errors.Is(err, persistence.ErrNotFound):
			return state.WorldState{}, err
		}
	}

	c, _ := atlas.Lookup(cfg.Country)
	s, err := state.NewGame(c, cfg.Years, env)
	if err != nil {
		return state.WorldState{}, err
	}
	slog.Info("new game", "game", s.GameID, "country", c.Name, "years", cfg.Years, "difficulty", c.Difficulty)
	return s, nil
}

// finish saves an unfinished game, or scores a finished one and shows the
// leaderboard.
func finish(db *persistence.DB, s state.WorldState, env *state.Env) error {
	if !s.Over() {
		slog.Info("final save...")
		if err := db.SaveGame(s, env.Now()); err != nil {
			return fmt.Errorf("final save: %w", err)
		}
		fmt.Printf("Simulation stopped on %s. Game saved.\n", engine.Calendar(s.CurrentDay))
		return nil
	}

	id, err := uuid.NewRandomFromReader(entropy.Reader(env.Rand))
	if err != nil {
		return fmt.Errorf("score id: %w", err)
	}
	if err := db.RecordScore(persistence.EntryFor(s, id.String(), env.Now())); err != nil {
		return err
	}
	if err := db.DeleteGame(s.Country.ID); err != nil {
		slog.Warn("failed to clear finished game", "error", err)
	}

	top, err := db.Leaderboard(5)
	if err != nil {
		return err
	}
	fmt.Println("\nLeaderboard")
	for i, e := range top {
		fmt.Printf("%d. %-16s %10.1f  %s\n", i+1, e.CountryName, e.FinalScore, e.Outcome)
	}
	return nil
}
