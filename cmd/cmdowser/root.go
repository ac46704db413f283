package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/cmdowser/internal/browser"
	"github.com/nao1215/cmdowser/internal/config"
	"github.com/nao1215/cmdowser/internal/database"
	"github.com/nao1215/cmdowser/internal/fetcher"
	"github.com/nao1215/cmdowser/internal/i18n"
	"github.com/nao1215/cmdowser/internal/log"
	"github.com/nao1215/cmdowser/internal/tor"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command. Run without a subcommand it starts
// an interactive browsing session.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cmdowser [url]",
		Short: "Text web browser for the terminal",
		Long: `CMDowser is a text web browser for the terminal.

It prints the readable text of a page followed by a numbered list of its
links. Type a link number to follow it, a URL to open it, "u" to go back
and "q" to quit. "/help" lists every command.

The interface speaks English, Russian and Ukrainian. The language follows
LANG / LC_ALL unless --lang is given, and can be changed at any time with
"lang".

Examples:
  # Ask for the first address
  cmdowser

  # Open a page right away, in Russian
  cmdowser --lang ru https://example.com

  # Browse through an existing SOCKS5 proxy
  cmdowser --proxy 127.0.0.1:9050

  # Start an embedded Tor daemon and open an onion service
  cmdowser --tor http://<address>.onion/

  # Keep a log of visited pages (see "cmdowser visits")
  cmdowser --record`,
		Version:       getVersion(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runBrowseCmd,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.Flags().StringP("lang", "l", "",
		"Interface language: en, ru or uk (default: from LANG / LC_ALL)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each page request")
	cmd.Flags().StringP("user-agent", "u", config.DefaultUserAgent,
		"User-Agent header sent with every request")
	cmd.Flags().StringP("proxy", "x", "",
		"SOCKS5 proxy address (e.g., 127.0.0.1:9050)")
	cmd.Flags().Bool("tor", false,
		"Start an embedded Tor daemon and browse through it")
	cmd.Flags().Duration("tor-timeout", config.DefaultTorStartupTimeout,
		"Timeout for embedded Tor startup")
	cmd.Flags().BoolP("record", "r", false,
		"Record visited pages in the visit log")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .cmdowser in current or home directory)")

	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVisitsCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runBrowseCmd executes the root command.
func runBrowseCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return browse(ctx, cfg, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from defaults, the configuration file and
// the command line flags, in increasing order of precedence.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.ConfigFilePath = configPath

	// An explicitly named file must exist; the default locations are optional.
	if found := config.FindConfigFile(configPath); found != "" {
		file, err := config.LoadConfigFile(found)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
		}
		cfg.ApplyFile(file)
	} else if configPath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, configPath)
	}

	flags := cmd.Flags()
	if flags.Changed("lang") {
		if cfg.Language, err = flags.GetString("lang"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("user-agent") {
		if cfg.UserAgent, err = flags.GetString("user-agent"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("proxy") {
		if cfg.ProxyAddress, err = flags.GetString("proxy"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("record") {
		if cfg.Record, err = flags.GetBool("record"); err != nil {
			return nil, err
		}
	}

	if cfg.UseTor, err = flags.GetBool("tor"); err != nil {
		return nil, err
	}
	if cfg.TorStartupTimeout, err = flags.GetDuration("tor-timeout"); err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	if len(args) > 0 {
		cfg.StartURL = args[0]
	}

	return cfg, nil
}

// sessionLocale returns the configured language, or the one detected from
// the environment when none is configured.
func sessionLocale(cfg *config.Config) i18n.Locale {
	if cfg.Language == "" {
		return i18n.DetectLocale()
	}
	l, err := i18n.ParseLocale(cfg.Language)
	if err != nil {
		return i18n.DefaultLocale
	}
	return l
}

// browse wires the session together and runs it until the user quits.
func browse(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer, logger *slog.Logger) error {
	proxyAddress := ""
	if cfg.UseTor {
		daemon, err := startEmbeddedTor(ctx, cfg, out, logger)
		if err != nil {
			return err
		}
		defer func() {
			logger.Debug("stopping embedded Tor daemon")
			if err := daemon.Stop(); err != nil {
				logger.Error("failed to stop embedded Tor", "error", err)
			}
		}()
		if proxyAddress, err = daemon.SocksAddr(); err != nil {
			return err
		}
	}

	client, err := fetcher.NewClientFromConfig(cfg, proxyAddress)
	if err != nil {
		return fmt.Errorf("failed to create HTTP client: %w", err)
	}

	opts := []browser.Option{
		browser.WithLogger(logger),
		browser.WithStartURL(cfg.StartURL),
	}
	if cfg.Record {
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open visit log: %w", err)
		}
		defer db.Close()
		logger.Debug("visit log opened", "path", db.Path())
		opts = append(opts, browser.WithRecorder(db))
	}

	nav := browser.New(in, out, client, i18n.NewTranslator(sessionLocale(cfg)), opts...)
	if err := nav.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// startEmbeddedTor starts the embedded Tor daemon. Bootstrapping takes a
// while, so progress is printed.
func startEmbeddedTor(ctx context.Context, cfg *config.Config, out io.Writer, logger *slog.Logger) (*tor.Daemon, error) {
	fmt.Fprintln(out, "Starting embedded Tor daemon (this may take a few minutes)...")

	daemon := tor.NewDaemon(tor.WithStartupTimeout(cfg.TorStartupTimeout))
	if err := daemon.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start embedded Tor: %w", err)
	}

	addr, _ := daemon.SocksAddr() //nolint:errcheck // the daemon was just started
	logger.Debug("embedded Tor daemon ready", "socks", addr)
	fmt.Fprintln(out, "Tor is ready.")
	return daemon, nil
}
