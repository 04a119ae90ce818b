package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bkyoung/diffsplit/internal/store"
	"github.com/bkyoung/diffsplit/internal/usecase/split"
)

// ErrVersionRequested indicates the user requested the CLI version and no further work should be done.
var ErrVersionRequested = errors.New("version requested")

// Splitter defines the dependency required to run the split command.
type Splitter interface {
	Split(ctx context.Context, input io.Reader, sink split.Sink, opts split.Options) (split.Summary, error)
}

// DiffSource provides unified diff text from a git repository.
type DiffSource interface {
	UnifiedDiff(ctx context.Context, baseRef, targetRef string) (string, error)
	CurrentBranch(ctx context.Context) (string, error)
}

// SinkFactory opens the output sink for a target root directory.
type SinkFactory func(root string) (split.Sink, error)

// SourceFactory opens a git diff source for a repository directory.
type SourceFactory func(repoDir string) DiffSource

// ManifestFactory wraps a sink so writes are recorded in a manifest store
// at path under the given run. The returned func closes the store.
type ManifestFactory func(ctx context.Context, path string, run store.Run, inner split.Sink) (split.Sink, func() error, error)

// Arguments encapsulates IO injected from the host process.
type Arguments struct {
	In           io.Reader
	InIsTerminal func() bool
	OutWriter    io.Writer
	ErrWriter    io.Writer
}

// Defaults holds configuration-supplied default values for the split flags.
type Defaults struct {
	OutputDir       string
	Strip           int
	MaskLineNumbers bool
	SkipHeader      bool
	RepoDir         string
	ManifestEnabled bool
	ManifestPath    string
}

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	Splitter    Splitter
	NewSink     SinkFactory
	NewSource   SourceFactory
	NewManifest ManifestFactory
	Args        Arguments
	Defaults    Defaults
	Version     string
}

// NewRootCommand constructs the root Cobra command.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}

	root := &cobra.Command{
		Use:   "diffsplit",
		Short: "Split a unified diff into one artifact per file",
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	outWriter := deps.Args.OutWriter
	if outWriter == nil {
		outWriter = os.Stdout
	}
	errWriter := deps.Args.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	root.SetOut(outWriter)
	root.SetErr(errWriter)

	root.AddCommand(splitCommand(deps))

	var showVersion bool
	root.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "Show version and exit")
	versionHandler := func(cmd *cobra.Command, args []string) error {
		if showVersion {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionString)
			return ErrVersionRequested
		}
		return nil
	}
	root.PersistentPreRunE = versionHandler
	root.PreRunE = versionHandler
	root.RunE = func(cmd *cobra.Command, args []string) error {
		if err := versionHandler(cmd, args); err != nil {
			return err
		}
		return cmd.Help()
	}

	return root
}

func splitCommand(deps Dependencies) *cobra.Command {
	var strip int
	var maskLineNumbers bool
	var skipHeader bool
	var baseRef string
	var targetRef string
	var repoDir string
	var manifest bool
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "split [target-dir]",
		Short: "Split a diff read from stdin (or a git repo) into per-file files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			targetDir := deps.Defaults.OutputDir
			if len(args) > 0 {
				targetDir = args[0]
			}
			if targetDir == "" {
				return fmt.Errorf("target directory not specified; pass it as an argument or set output.directory")
			}

			opts := split.Options{
				Strip:           resolveStrip(cmd, strip, deps.Defaults.Strip),
				MaskLineNumbers: resolveBool(cmd, "mask-linenum", maskLineNumbers, deps.Defaults.MaskLineNumbers),
				SkipHeader:      resolveBool(cmd, "skip-header", skipHeader, deps.Defaults.SkipHeader),
			}

			input, err := resolveInput(ctx, deps, baseRef, targetRef, repoDir)
			if err != nil {
				return err
			}

			sink, err := deps.NewSink(targetDir)
			if err != nil {
				return err
			}

			if resolveBool(cmd, "manifest", manifest, deps.Defaults.ManifestEnabled) {
				now := time.Now()
				run := store.Run{
					RunID:      store.GenerateRunID(now, targetDir),
					Timestamp:  now,
					TargetDir:  targetDir,
					StripMode:  store.StripModeString(opts.Strip),
					Masked:     opts.MaskLineNumbers,
					SkipHeader: opts.SkipHeader,
				}
				path := manifestPath
				if path == "" {
					path = deps.Defaults.ManifestPath
				}
				wrapped, closeStore, err := deps.NewManifest(ctx, path, run, sink)
				if err != nil {
					return fmt.Errorf("open manifest store: %w", err)
				}
				defer func() { _ = closeStore() }()
				sink = wrapped
			}

			summary, err := deps.Splitter.Split(ctx, input, sink, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Processing complete. Files created in '%s'.\n", targetDir)
			_, _ = fmt.Fprintf(out, "files: %d, binary markers: %d, skipped: %d\n",
				summary.FilesWritten, summary.BinaryMarkers, summary.Skipped)
			return nil
		},
	}

	cmd.Flags().IntVar(&strip, "strip", split.StripAuto, "Leading path components to strip (default: auto-detect)")
	cmd.Flags().BoolVar(&maskLineNumbers, "mask-linenum", false, "Mask hunk-header start line numbers with X")
	cmd.Flags().BoolVar(&skipHeader, "skip-header", false, "Omit diff/index/---/+++ header lines from artifacts")
	cmd.Flags().StringVar(&baseRef, "base", "", "Read the diff from the enclosing git repository, against this base ref")
	cmd.Flags().StringVar(&targetRef, "target", "", "Git target ref (default: checked-out branch, requires --base)")
	cmd.Flags().StringVar(&repoDir, "repo", "", "Repository directory for --base")
	cmd.Flags().BoolVar(&manifest, "manifest", false, "Record a split manifest in SQLite")
	cmd.Flags().StringVar(&manifestPath, "manifest-path", "", "Manifest database path")

	return cmd
}

// resolveInput selects the diff source: a git repository when --base is
// set, stdin otherwise. A terminal on stdin is refused rather than left to
// hang waiting for typed input.
func resolveInput(ctx context.Context, deps Dependencies, baseRef, targetRef, repoDir string) (io.Reader, error) {
	if baseRef != "" {
		if repoDir == "" {
			repoDir = deps.Defaults.RepoDir
		}
		if repoDir == "" {
			repoDir = "."
		}
		source := deps.NewSource(repoDir)
		if targetRef == "" {
			resolved, err := source.CurrentBranch(ctx)
			if err != nil {
				return nil, fmt.Errorf("detect target branch: %w", err)
			}
			targetRef = resolved
		}
		text, err := source.UnifiedDiff(ctx, baseRef, targetRef)
		if err != nil {
			return nil, err
		}
		return strings.NewReader(text), nil
	}

	if targetRef != "" {
		return nil, fmt.Errorf("--target requires --base")
	}
	if deps.Args.InIsTerminal != nil && deps.Args.InIsTerminal() {
		return nil, fmt.Errorf("stdin is a terminal; pipe a unified diff or use --base")
	}
	in := deps.Args.In
	if in == nil {
		in = os.Stdin
	}
	return in, nil
}

// resolveStrip returns the CLI value when the flag was explicitly set,
// otherwise the config default. Negative explicit values select
// auto-detection.
func resolveStrip(cmd *cobra.Command, cliValue, configDefault int) int {
	if !cmd.Flags().Changed("strip") {
		return configDefault
	}
	if cliValue < 0 {
		return split.StripAuto
	}
	return cliValue
}

// resolveBool returns the CLI value when the flag was explicitly set,
// otherwise the config default.
func resolveBool(cmd *cobra.Command, flagName string, cliValue, configDefault bool) bool {
	if !cmd.Flags().Changed(flagName) {
		return configDefault
	}
	return cliValue
}
