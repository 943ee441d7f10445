package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/automaxprocs/maxprocs"

	onemath "github.com/alnah/go-onemath"
	"github.com/alnah/go-onemath/internal/assets"
	"github.com/alnah/go-onemath/internal/config"
	"github.com/alnah/go-onemath/internal/hints"
)

// runRender renders every page under the input path.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := cfg.LogLevel() // validated above
	logger := newLogger(env.Stderr, level, flags.common.quiet, flags.common.verbose)

	undo, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		logger.Debug().Msgf(format, args...)
	}))
	if err != nil {
		logger.Warn().Err(err).Msg("GOMAXPROCS left unchanged")
	}
	defer undo()

	if err := validateWorkers(cfg.Render.Workers); err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}
	files, err := discoverFiles(inputPath, cfg.Output.DefaultDir)
	if err != nil {
		return fmt.Errorf("discovering pages: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoFiles, inputPath)
	}

	opts, err := converterOptions(cfg, flags.style.noStyle, logger)
	if err != nil {
		return err
	}

	size := onemath.ResolvePoolSize(cfg.Render.Workers)
	logger.Debug().Int("workers", size).Int("pages", len(files)).Msg("starting render")

	pool, err := onemath.NewConverterPool(size, opts...)
	if err != nil {
		if errors.Is(err, onemath.ErrStyleNotFound) {
			return fmt.Errorf("%w%s", err, hints.ForStyleNotFound(env.Styles()))
		}
		return err
	}
	defer pool.Close()

	params := &renderParams{title: flags.title}
	results := renderBatch(ctx, &converterPool{pool}, files, params)

	return summarize(results, flags.common.quiet, flags.common.verbose, env)
}

// loadConfig reads the config named by the flag or ONEMATH_CONFIG and
// applies environment overrides. No name means built-in defaults.
func loadConfig(name string, env *Environment) (*config.Config, error) {
	warnUnknownEnvVars(env.Environ(), env.Stderr)
	envCfg := loadEnvConfig(env.Getenv)

	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// mergeFlags copies explicitly set flags over config values.
func mergeFlags(flags *renderFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Output.DefaultDir = flags.output
	}
	if flags.workers != 0 {
		cfg.Render.Workers = flags.workers
	}
	if flags.timeout > 0 {
		cfg.Render.Timeout = flags.timeout.String()
	}
	if flags.style.style != "" {
		cfg.CSS.Style = flags.style.style
	}
	if flags.style.assetPath != "" {
		cfg.Assets.BasePath = flags.style.assetPath
	}
}

// converterOptions turns the merged config into converter options.
// Without --no-style, pages get the configured style or the built-in default.
func converterOptions(cfg *config.Config, noStyle bool, logger zerolog.Logger) ([]onemath.Option, error) {
	opts := []onemath.Option{onemath.WithLogger(logger)}

	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		opts = append(opts, onemath.WithTimeout(timeout))
	}

	if cfg.Assets.BasePath != "" {
		opts = append(opts, onemath.WithAssetPath(cfg.Assets.BasePath))
	}

	if !noStyle {
		style := cfg.CSS.Style
		if style == "" {
			style = assets.DefaultStyleName
		}
		opts = append(opts, onemath.WithStyle(style))
	}

	return opts, nil
}

// validateWorkers checks that the worker count is within bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}

// summarize prints results and returns an error when any page failed.
func summarize(results []RenderResult, quiet, verbose bool, env *Environment) error {
	var failed []RenderResult
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
			continue
		}
		if quiet {
			continue
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", len(results)-len(failed), len(failed))
	}

	if len(failed) == 0 {
		return nil
	}
	return &batchError{failed: len(failed), total: len(results), first: failed[0].Err}
}

// hintFor picks the hint matching a page failure.
func hintFor(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	default:
		return hints.ForEquation(err)
	}
}

// batchError reports failed pages. It unwraps to the first failure so the
// exit code reflects its cause.
type batchError struct {
	failed int
	total  int
	first  error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d of %d page(s) failed", e.failed, e.total)
}

func (e *batchError) Unwrap() error { return e.first }
