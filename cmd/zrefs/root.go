package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zicht/zrefs/internal/config"
	"github.com/zicht/zrefs/internal/git"
	"github.com/zicht/zrefs/internal/log"
	"github.com/zicht/zrefs/internal/output"
)

// Command group IDs for organizing help output
const (
	GroupRefs    = "refs"
	GroupFormat  = "format"
	GroupUtility = "utility"
	GroupConfig  = "config"
)

// globalFlags are the persistent flags shared by all commands.
type globalFlags struct {
	verbose    bool
	quiet      bool
	dir        string
	configPath string
}

// skipRepoSetup lists commands that run without a git repository.
var skipRepoSetup = map[string]bool{
	"completion": true,
	"__complete": true,
	"help":       true,
	"commands":   true,
	"init":       true,
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "zrefs",
		Short: "Manage environment refs in a git repository",
		Long: `zrefs manages a namespace of git refs (refs/deploy/ by default) that
point at the commits deployed to each environment.

Each environment NAME is stored as <prefix>NAME. Commands that change refs
are printed rather than run, so they can be reviewed, copied or applied
with --apply.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2, // Enable typo suggestions
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, &flags)
		},
		// Run is not set - shows help when no subcommand provided
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Show external commands being executed")
	cmd.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, "Suppress all log output")
	cmd.PersistentFlags().StringVarP(&flags.dir, "dir", "C", "", "Run as if zrefs was started in this directory")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Config file (default ~/.config/zrefs/config.toml)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	_ = cmd.MarkPersistentFlagDirname("dir")

	// Version flag
	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	cmd.AddGroup(
		&cobra.Group{ID: GroupRefs, Title: "Ref Commands:"},
		&cobra.Group{ID: GroupFormat, Title: "Command Builders:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Ref commands
	cmd.AddCommand(newPathCmd())
	cmd.AddCommand(newExistsCmd())
	cmd.AddCommand(newResolveCmd())
	cmd.AddCommand(newTreeCmd())
	cmd.AddCommand(newLogCmd())
	cmd.AddCommand(newListCmd())

	// Command builders
	cmd.AddCommand(newCreateCmd())
	cmd.AddCommand(newFmtCmd())

	// Utility commands
	cmd.AddCommand(newCallCmd())
	cmd.AddCommand(newCommandsCmd())
	cmd.AddCommand(newBatchCmd())

	// Config commands
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newCompletionCmd())

	return cmd
}

// setup attaches logger, printer, work dir and config to the command context.
func setup(cmd *cobra.Command, flags *globalFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Validate mutually exclusive flags
	if flags.verbose && flags.quiet {
		return fmt.Errorf("--verbose and --quiet are mutually exclusive")
	}

	// Create logger (stderr for diagnostics)
	ctx = log.WithLogger(ctx, log.New(cmd.ErrOrStderr(), flags.verbose, flags.quiet))

	// Add output printer (stdout for primary data)
	if out := cmd.OutOrStdout(); out == os.Stdout {
		ctx = output.WithTerminalPrinter(ctx, output.NewTerminal(os.Stdout))
	} else {
		ctx = output.WithPrinter(ctx, out)
	}

	dir := flags.dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
	}
	ctx = config.WithWorkDir(ctx, dir)

	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return err
	}
	ctx = config.WithConfig(ctx, cfg)
	cmd.SetContext(ctx)

	// Skip git check for commands that don't touch a repository
	if skipRepoSetup[cmd.Name()] {
		return nil
	}

	// Check git is available
	if err := git.CheckGit(); err != nil {
		return err
	}

	// Overlay the repository's .zrefs.toml when inside one
	runner := git.NewExecRunner(dir)
	if top, err := git.TopLevel(ctx, runner); err == nil {
		repoCfg, err := config.ForRepo(cfg, top)
		if err != nil {
			return err
		}
		cmd.SetContext(config.WithConfig(ctx, repoCfg))
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'zrefs -h' for help")
		cancel()
		os.Exit(1)
	}
}
