// Command classbell is a classroom session timer: class phases with
// randomized attention cues, followed by rest phases.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/llehouerou/classbell/internal/app"
	"github.com/llehouerou/classbell/internal/config"
	"github.com/llehouerou/classbell/internal/errmsg"
	"github.com/llehouerou/classbell/internal/logging"
	"github.com/llehouerou/classbell/internal/mpris"
	"github.com/llehouerou/classbell/internal/notify"
	"github.com/llehouerou/classbell/internal/player"
	"github.com/llehouerou/classbell/internal/state"
	"github.com/llehouerou/classbell/internal/stderr"
	"github.com/llehouerou/classbell/internal/ticker"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	log, logCloser, err := logging.New(logging.Config{Level: cfg.GetLogLevel()})
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}
	defer logCloser.Close()

	// The audio backend writes diagnostics to fd 2, which would corrupt the TUI.
	if err := stderr.Start(log); err != nil {
		log.Warn().Err(err).Msg("stderr capture unavailable")
	}
	defer stderr.Stop()

	store, err := state.Open()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpSettingsLoad, err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("close state")
		}
	}()

	classTime, restTime, volume := cfg.GetClassTime(), cfg.GetRestTime(), cfg.GetVolume()
	saved, err := store.Settings()
	switch {
	case err != nil:
		log.Warn().Err(err).Msg(errmsg.Format(errmsg.OpSettingsLoad, err))
	case saved != nil:
		if saved.ClassTime > 0 {
			classTime = saved.ClassTime
		}
		if saved.RestTime > 0 {
			restTime = saved.RestTime
		}
		volume = saved.Volume
	}

	p := player.New(player.Options{Logger: log})
	p.SetVolume(volume)
	defer p.Close()

	cues := cfg.GetCues()
	alert, resume := cfg.GetAlertWindow(), cfg.GetResumeWindow()
	tk := ticker.New(p, ticker.Options{
		ClassTime: classTime,
		RestTime:  restTime,
		Alert:     ticker.Window{Min: alert.Min, Max: alert.Max},
		Resume:    ticker.Window{Min: resume.Min, Max: resume.Max},
		Cues: ticker.Cues{
			ClassStart: cues.ClassStart,
			Alert:      cues.Alert,
			Resume:     cues.Resume,
			Rest:       cues.Rest,
		}.In(cfg.AssetsDir),
		Logger: log,
	})
	defer func() {
		if err := tk.Close(); err != nil {
			log.Warn().Err(err).Msg("close ticker")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.NotificationsEnabled() {
		startNotifications(ctx, tk, log)
	}

	if cfg.MPRISEnabled() {
		adapter, err := mpris.New(tk, p, log)
		if err != nil {
			log.Warn().Err(err).Msg("mpris unavailable")
		} else {
			defer adapter.Close()
		}
	}

	log.Info().
		Uint64("class_time", classTime).
		Uint64("rest_time", restTime).
		Str("assets_dir", cfg.AssetsDir).
		Msg("starting")

	m := app.New(app.Options{
		Session:  tk,
		Player:   p,
		State:    store,
		CueTitle: cueTitle,
		Logger:   log,
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func startNotifications(ctx context.Context, tk *ticker.Ticker, log zerolog.Logger) {
	n, err := notify.New()
	if err != nil {
		log.Warn().Err(err).Msg(errmsg.Format(errmsg.OpNotify, err))
		return
	}
	go notify.Forward(ctx, tk.Subscribe(), tk, n, log)
}

// cueTitle names a cue for the session bar: its tag title and length.
func cueTitle(path string) string {
	info, err := player.ReadCueInfo(path)
	if err != nil {
		return filepath.Base(path)
	}
	return fmt.Sprintf("%s (%s)", info.Title, info.Duration.Round(time.Second))
}
