package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bkyoung/diffsplit/internal/adapter/cli"
	"github.com/bkyoung/diffsplit/internal/adapter/fs"
	gitadapter "github.com/bkyoung/diffsplit/internal/adapter/git"
	storeadapter "github.com/bkyoung/diffsplit/internal/adapter/store"
	"github.com/bkyoung/diffsplit/internal/adapter/store/sqlite"
	"github.com/bkyoung/diffsplit/internal/config"
	"github.com/bkyoung/diffsplit/internal/store"
	"github.com/bkyoung/diffsplit/internal/usecase/split"
	"github.com/bkyoung/diffsplit/internal/version"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, cli.ErrVersionRequested) {
			return
		}
		log.Println(err)
		os.Exit(1)
	}
}

func run() error {
	// Create cancellable context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: defaultConfigPaths(),
		FileName:    "diffsplit",
		EnvPrefix:   "DIFFSPLIT",
	})
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	deps := cli.Dependencies{
		Splitter: split.NewService(),
		NewSink: func(root string) (split.Sink, error) {
			return fs.NewDirSink(root)
		},
		NewSource: func(repoDir string) cli.DiffSource {
			return gitadapter.NewEngine(repoDir)
		},
		NewManifest: openManifest,
		Args: cli.Arguments{
			In:           os.Stdin,
			InIsTerminal: split.StdinIsTerminal,
			OutWriter:    os.Stdout,
			ErrWriter:    os.Stderr,
		},
		Defaults: cli.Defaults{
			OutputDir:       cfg.Output.Directory,
			Strip:           cfg.Split.Strip,
			MaskLineNumbers: cfg.Split.MaskLineNumbers,
			SkipHeader:      cfg.Split.SkipHeader,
			RepoDir:         cfg.Git.RepositoryDir,
			ManifestEnabled: cfg.Store.Enabled,
			ManifestPath:    cfg.Store.Path,
		},
		Version: version.Value(),
	}

	return cli.NewRootCommand(deps).ExecuteContext(ctx)
}

// openManifest opens the SQLite manifest store and wraps the sink in the
// recording bridge.
func openManifest(ctx context.Context, path string, run store.Run, inner split.Sink) (split.Sink, func() error, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create store directory: %w", err)
		}
	}
	st, err := sqlite.NewStore(path)
	if err != nil {
		return nil, nil, err
	}
	bridge, err := storeadapter.NewBridge(ctx, inner, st, run)
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}
	return bridge, st.Close, nil
}

func defaultConfigPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "diffsplit"))
	}
	return paths
}
