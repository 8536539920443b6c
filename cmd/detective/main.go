package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"detective/internal/config"
	"detective/internal/game"
	"detective/internal/input"

	"github.com/charmbracelet/log"
)

func main() {
	// Assets are resolved relative to the binary, except under "go run"
	// which builds into a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	env, err := config.LoadEnv()
	if err != nil {
		log.Fatal("bad environment", "err", err)
	}
	level, err := log.ParseLevel(env.LogLevel)
	if err != nil {
		log.Warn("unknown log level, using info", "level", env.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	tunables, err := config.LoadTunables(env.ConfigPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Warn("no tunables file, using defaults", "path", env.ConfigPath)
		tunables = config.DefaultTunables()
	case err != nil:
		log.Fatal("load tunables", "err", err)
	}

	g, err := game.New(env, tunables, input.RaylibSource{})
	if err != nil {
		log.Fatal("create game", "err", err)
	}
	if err := g.Run(); err != nil {
		log.Fatal("run", "err", err)
	}
}
