package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/config"
	"github.com/matzehuels/wordcloud/pkg/observability"
)

// setup runs before every command. It loads configuration, then applies
// logging settings: flags win over the config file and environment.
//
// Loading order:
//   - --config if given, otherwise the default config path when it exists
//   - WORDCLOUD_* environment variables
//   - --log-file, --log-format and --verbose
//
// At debug level the pipeline, cache and API hooks are routed to the logger.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	var (
		cfg config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.Load(c.configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}
	c.Config = cfg

	opts := logOptions{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	}
	if c.logFormat != "" {
		opts.Format = c.logFormat
	}
	if c.logFile != "" {
		opts.File = c.logFile
	}
	if f := cmd.Flags().Lookup("verbose"); f != nil && f.Changed {
		opts.Level = "" // --verbose already set the level
	}

	closer, err := configureLogger(c.Logger, c.stderr, opts)
	if err != nil {
		return err
	}
	c.logCloser = closer

	if c.Logger.GetLevel() <= LogDebug {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetAPIHooks(hooks)
	}

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}
