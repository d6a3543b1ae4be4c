package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/survive2020/internal/audio"
	"github.com/vovakirdan/survive2020/internal/config"
	"github.com/vovakirdan/survive2020/internal/core"
	"github.com/vovakirdan/survive2020/internal/highscore"
	"github.com/vovakirdan/survive2020/internal/level"
	"github.com/vovakirdan/survive2020/internal/platform/tui"
	"github.com/vovakirdan/survive2020/internal/session"
	"github.com/vovakirdan/survive2020/internal/storage"
)

// env holds what every interactive command needs.
type env struct {
	logger  *log.Logger
	logFile io.Closer
	store   *storage.Store
	loader  *config.Loader
	watcher *config.Watcher
	audio   audio.Output
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// newLogger writes to the log file; the interactive UI owns the terminal.
func newLogger(path string, w io.Writer) (*log.Logger, io.Closer, error) {
	var closer io.Closer
	if w == nil {
		path = expandHome(path)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "survive2020",
	})
	lvl, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, err
	}
	logger.SetLevel(lvl)
	return logger, closer, nil
}

func newLoader(customLevel, customPath string) (*config.Loader, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return nil, err
	}
	loader := config.NewLoader(preset)
	if flagConfigDir != "" {
		loader.SetDir(flagConfigDir)
	}
	if customPath != "" {
		loader.SetCustomPath(customLevel, customPath)
	}
	return loader, nil
}

// openEnv opens the logger, the store, the config loader and the audio
// device. logTo overrides the log file when set.
func openEnv(logTo io.Writer, customLevel, customPath string, withAudio bool) (*env, error) {
	logger, closer, err := newLogger(flagLogFile, logTo)
	if err != nil {
		return nil, err
	}
	e := &env{logger: logger, logFile: closer, audio: audio.Nop{}}

	e.loader, err = newLoader(customLevel, customPath)
	if err != nil {
		e.Close()
		return nil, err
	}

	e.store, err = storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		e.store = nil
	}

	if flagWatch {
		if dirs := e.loader.Dirs(); len(dirs) > 0 {
			e.watcher, err = config.NewWatcher(e.loader, dirs...)
			if err != nil {
				logger.Warn("config watcher disabled", "err", err)
			} else {
				logger.Info("watching level configs", "dirs", dirs)
			}
		}
	}

	if withAudio {
		e.audio = audio.Open(flagMute, logger)
	}
	return e, nil
}

func (e *env) Close() {
	if s, ok := e.audio.(*audio.Speaker); ok {
		s.Close()
	}
	if e.watcher != nil {
		_ = e.watcher.Close()
	}
	if e.store != nil {
		_ = e.store.Close()
	}
	if e.logFile != nil {
		_ = e.logFile.Close()
	}
}

func (e *env) runtime() core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.TickRate = flagFPS
	rc.Seed = flagSeed
	return rc
}

func (e *env) sessionOptions() session.Options {
	svc := level.Services{
		Audio:   e.audio,
		Configs: e.loader,
		Logger:  e.logger,
	}
	if e.store != nil {
		svc.Scores = highscore.NewBook(e.store, e.logger)
		svc.History = e.store
	} else {
		svc.Scores = highscore.NewBook(nil, e.logger)
	}
	return session.Options{
		Services: svc,
		Runtime:  e.runtime(),
		Watcher:  e.watcher,
	}
}

// terminalSize probes stdout, falling back to 80x24.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

func runTUI(opts session.Options, start string) error {
	w, h := terminalSize()
	return tui.Run(tui.Options{
		Session:       opts,
		Start:         start,
		Width:         w,
		Height:        h,
		KeyHold:       flagKeyHold,
		ScreenshotDir: expandHome("~/.survive2020/screenshots"),
	})
}
