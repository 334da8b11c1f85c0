package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/s9b/memenem/internal/client"
	"github.com/s9b/memenem/internal/config"
	"github.com/s9b/memenem/internal/domain"
	"github.com/s9b/memenem/internal/logger"
	"github.com/s9b/memenem/internal/render"
	"github.com/s9b/memenem/internal/repository"
	"github.com/s9b/memenem/internal/service"
	"github.com/s9b/memenem/internal/storage"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

// options are the global flags shared by every command.
type options struct {
	configPath string
	apiURL     string
	verbose    bool
	jsonOutput bool
}

// app is everything a command needs, built once per invocation.
type app struct {
	cfg        *config.Config
	log        *logger.Logger
	api        *client.Client
	store      repository.KVStore
	collection *service.CollectionService
	memes      *service.MemeService
	themes     *repository.ThemeRepository
	theme      render.Theme
	out        io.Writer
	now        func() time.Time
}

// rootCommand is the memenem command tree plus the app its pre-run built.
// Close must be called after Execute, whether or not the command failed.
type rootCommand struct {
	*cobra.Command
	app *app
}

func newRootCmd() *rootCommand {
	opts := &options{}
	rc := &rootCommand{}

	rc.Command = &cobra.Command{
		Use:   "memenem",
		Short: "memenem - AI meme generator client",
		Long: `memenem talks to the meme generation backend.

Generate memes for a topic in one of five humor styles, browse trending
memes and templates, upvote, and keep a local collection of favourites
that can be shared, downloaded or exported.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			rc.app, err = bootstrap(cmd, opts)
			return err
		},
	}

	root := rc.Command
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file")
	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "backend base URL (overrides config)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "print raw JSON instead of formatted output")

	get := func() *app { return rc.app }
	root.AddCommand(
		newGenerateCmd(get, opts),
		newTemplatesCmd(get, opts),
		newTrendingCmd(get, opts),
		newUpvoteCmd(get, opts),
		newScoreCmd(get, opts),
		newHealthCmd(get, opts),
		newStatusCmd(get, opts),
		newStylesCmd(get, opts),
		newCollectionCmd(get, opts),
		newShareCmd(get),
		newDownloadCmd(get, opts),
		newExportCmd(get, opts),
		newThemeCmd(get),
	)
	return rc
}

// Close releases local storage opened by the command, if any.
func (rc *rootCommand) Close() {
	if rc.app != nil {
		rc.app.close()
	}
}

// bootstrap loads config, sets up logging and opens local storage.
func bootstrap(cmd *cobra.Command, opts *options) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.apiURL != "" {
		cfg.API.BaseURL = opts.apiURL
		if err := cfg.API.Validate(); err != nil {
			return nil, err
		}
	}

	logCfg := cfg.Log.Resolve("warn", "text")
	envCfg := logger.LoadFromEnv("memenem", logCfg.Level, logCfg.Format)
	if opts.verbose {
		envCfg.Level = "debug"
	}
	envCfg.Output = cmd.ErrOrStderr()
	if envCfg.Environment != "local" && envCfg.LogFile != "" {
		envCfg.Output = nil
	}
	appLogger := logger.NewFromEnv(envCfg)
	logger.SetDefaultLogger(appLogger)

	ctx := logger.SetCommand(appLogger.WithContext(cmd.Context()), cmd.CommandPath())
	cmd.SetContext(ctx)

	store, err := repository.OpenKVStore(&cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	api := client.New(&cfg.API)
	collection := service.NewCollectionService(repository.NewCollectionRepository(store))
	themes := repository.NewThemeRepository(store)

	theme, err := themes.Get(ctx)
	if err != nil {
		appLogger.WithError(err).Warn("Failed to load theme, using light")
		theme = domain.ThemeLight
	}

	appLogger.WithFields(logger.Fields{
		"api_url": api.BaseURL(),
		"storage": cfg.Storage.Driver,
	}).Debug("memenem initialized")

	return &app{
		cfg:        cfg,
		log:        appLogger,
		api:        api,
		store:      store,
		collection: collection,
		memes:      service.NewMemeService(api, collection),
		themes:     themes,
		theme:      render.ThemeFor(theme),
		out:        cmd.OutOrStdout(),
		now:        time.Now,
	}, nil
}

// objectStorage opens the export target on demand; only download and
// export need it.
func (a *app) objectStorage(cmd *cobra.Command) (storage.ObjectStorage, error) {
	st, err := storage.NewStorage(&a.cfg.Objects)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	if err := st.EnsureBucket(cmd.Context()); err != nil {
		return nil, fmt.Errorf("failed to ensure storage bucket: %w", err)
	}
	return st, nil
}

func (a *app) downloader(cmd *cobra.Command, workers int) (*service.DownloadService, error) {
	st, err := a.objectStorage(cmd)
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = a.cfg.Download.Workers
	}
	return service.NewDownloadService(a.collection, st, &service.DownloadConfig{
		BaseURL: a.api.BaseURL(),
		Workers: workers,
		Timeout: a.cfg.API.Timeout,
	}), nil
}

func (a *app) close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		a.log.WithError(err).Warn("Failed to close storage")
	}
	a.store = nil
}

func (a *app) println(s string) {
	fmt.Fprintln(a.out, s)
}

func (a *app) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// printJSON writes v indented, for --json output.
func (a *app) printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	a.println(string(data))
	return nil
}
