package main

import (
	"fmt"
	"log/slog"
	"os"

	"tether/internal/client"
	"tether/internal/config"
	"tether/internal/logging"
	"tether/internal/session"
	"tether/internal/stream"
	"tether/internal/styles"
	"tether/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: read config: %v\n", err)
		os.Exit(1)
	}

	dir, err := config.Dir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: config dir: %v\n", err)
		os.Exit(1)
	}

	logCloser, err := logging.Init(dir, cfg.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: open log: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	store, err := session.OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: open store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Last-used values override file-backed defaults.
	url := cfg.URL
	if v, ok, err := store.Get(session.KeyBaseURL); err == nil && ok && v != "" {
		url = v
	}
	provider := cfg.Provider
	if v, ok, err := store.Get(session.KeyLastProvider); err == nil && ok && v != "" {
		provider = v
	}
	model := cfg.Model
	if v, ok, err := store.Get(session.KeyLastModel); err == nil && ok && v != "" {
		model = v
	}

	secret, err := config.SecretKey()
	if err != nil {
		slog.Warn("secret key unavailable", "err", err)
	}

	workingDir := cfg.WorkingDir
	if workingDir == "" {
		workingDir, _ = os.Getwd()
	}

	state := session.NewState(workingDir)
	state.Provider = provider
	state.Model = model

	styles.InitTheme()

	deps := ui.Deps{
		Client:  client.New(url, secret).WithLogger(slog.Default()),
		Store:   store,
		Manager: session.NewManager(store, state),
		State:   state,
		Gate:    stream.NewGate(state),
		Cfg:     cfg,
		Secret:  secret,
	}

	p := ui.NewProgram(deps)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
