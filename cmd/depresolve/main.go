package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"depresolve"
	"depresolve/internal/config"
	"depresolve/internal/events"
	"depresolve/internal/httpclient"
	"depresolve/internal/model"
)

const (
	green  = "\033[32m"
	orange = "\033[33m"
	red    = "\033[31m"
	reset  = "\033[0m"
)

type CLI struct {
	Version  bool         `short:"v" help:"Show version information"`
	Parallel int          `short:"j" help:"Number of parallel workers per BFS level" default:"8"`
	Verbose  bool         `help:"Log every resolver event instead of just warnings and errors"`
	Resolve  ResolveCmd   `cmd:"" help:"Resolve a project's transitive dependency closure"`
	Download DownloadCmd  `cmd:"" help:"Resolve and download a project's dependency artifacts"`
}

type ResolveCmd struct {
	Directory string `arg:"" optional:"" help:"Project directory to resolve (defaults to current directory)"`
}

type DownloadCmd struct {
	Directory string `arg:"" optional:"" help:"Project directory to resolve (defaults to current directory)"`
	Output    string `short:"o" help:"Directory to write downloaded artifacts to" default:"./deps"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	if cli.Version {
		fmt.Println("depresolve version 1.0.0")
		return
	}

	switch ctx.Command() {
	case "resolve <directory>", "resolve":
		if err := runResolve(cli.Resolve.Directory, cli.Parallel, cli.Verbose); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "download <directory>", "download":
		if err := runDownload(cli.Download, cli.Parallel, cli.Verbose); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Println("depresolve: resolve or download a project's transitive dependency closure")
	}
}

func newResolver(parallel int, verbose bool, projectDir string) (*depresolve.Resolver, error) {
	cfg, err := config.Load(projectDir)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	sink := events.NewZerologSinkWithLogger(logger)

	concurrency := parallel
	if cfg.Concurrency != 0 {
		concurrency = cfg.Concurrency
	}

	client := httpclient.New(httpclient.Options{
		RetryMax: cfg.HTTPRetryMax,
		Timeout:  time.Duration(cfg.HTTPTimeoutSeconds) * time.Second,
	})

	var repos []*model.Repository
	for _, rc := range cfg.Repositories {
		repos = append(repos, &model.Repository{Name: rc.Name, BaseURL: rc.BaseURL})
	}

	return depresolve.New(depresolve.Options{
		Client:       client,
		Repositories: repos,
		Sink:         sink,
		Concurrency:  concurrency,
	}), nil
}

func resolveDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		dir = wd
	}
	return filepath.Abs(dir)
}

func runResolve(directory string, parallel int, verbose bool) error {
	absDir, err := resolveDir(directory)
	if err != nil {
		return err
	}

	resolver, err := newResolver(parallel, verbose, absDir)
	if err != nil {
		return err
	}

	artifacts, err := resolver.Resolve(context.Background(), absDir)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", absDir, err)
	}

	if len(artifacts) == 0 {
		fmt.Println("no dependencies found")
		return nil
	}

	for _, a := range artifacts {
		fmt.Printf("  %s✓%s %s\n", green, reset, a.String())
	}
	fmt.Printf("\n%d artifacts resolved\n", len(artifacts))
	return nil
}

func runDownload(cmd DownloadCmd, parallel int, verbose bool) error {
	absDir, err := resolveDir(cmd.Directory)
	if err != nil {
		return err
	}

	resolver, err := newResolver(parallel, verbose, absDir)
	if err != nil {
		return err
	}

	ctx := context.Background()
	artifacts, err := resolver.Resolve(ctx, absDir)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", absDir, err)
	}
	if len(artifacts) == 0 {
		fmt.Println("no dependencies found")
		return nil
	}

	outDir, err := filepath.Abs(cmd.Output)
	if err != nil {
		return fmt.Errorf("resolving output directory: %w", err)
	}

	fmt.Printf("downloading %d artifacts to %s\n", len(artifacts), outDir)
	if err := resolver.Download(ctx, outDir, artifacts); err != nil {
		return fmt.Errorf("downloading artifacts: %w", err)
	}

	fmt.Printf("%sdone%s\n", green, reset)
	return nil
}
