// Package cli wires the protosync commands: configuration and logging are
// resolved once per invocation, then each command builds the pipeline it
// needs from the resolved settings.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/grpc-protos/protosync/internal/protosync/interactive"
	"github.com/grpc-protos/protosync/internal/protosync/metrics"
	"github.com/grpc-protos/protosync/internal/protosync/report"
	"github.com/grpc-protos/protosync/internal/protosync/tools"
	"github.com/grpc-protos/protosync/pkg/config"
	perrors "github.com/grpc-protos/protosync/pkg/errors"
	"github.com/grpc-protos/protosync/pkg/logger"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	servicesRoot string
	repoRoot     string
	configPath   string
	logLevel     string
	metricsFile  string
	python       string
	noColor      bool
}

// app is the state of one invocation.
type app struct {
	opts   globalOptions
	in     io.Reader
	runner tools.Runner
	now    func() time.Time
	// choose shows the interactive menu once.
	choose func(ctx context.Context, in io.Reader, out io.Writer) (interactive.Selection, error)

	// Resolved by prepare.
	cfg          *config.Config
	configSource string
	repoRoot     string
	servicesRoot string
	console      *report.Console
	metrics      *metrics.Recorder
	metricsFile  string
}

func newApp() *app {
	return &app{
		in:     os.Stdin,
		runner: tools.ExecRunner{},
		now:    time.Now,
		choose: interactive.Run,
	}
}

// Execute runs the root command and writes the metrics textfile, also when
// the command failed.
func Execute(ctx context.Context) error {
	return execute(ctx, newApp(), nil, nil, os.Args[1:])
}

func execute(ctx context.Context, a *app, out, errOut io.Writer, args []string) error {
	root := newRootCmd(a)
	if out != nil {
		root.SetOut(out)
	}
	if errOut != nil {
		root.SetErr(errOut)
	}
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil {
		perrors.LogError(logger.Global(), err, "command failed")
	}
	if ferr := a.flushMetrics(); ferr != nil {
		logger.Warn("failed to write metrics", "file", a.metricsFile, "error", ferr)
	}
	return err
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "protosync",
		Short: "protosync - keep service protocol definitions and the central repository in step",
		Long: `protosync copies protocol definitions from service repositories into the central
protocol repository, validates and generates code with buf, bumps the
repository version and re-pins every service that depends on it.

Quick Examples:
  protosync status                          # Services and pending changes
  protosync sync --dry-run                  # Preview the copy
  protosync release --version 2.0.3         # Full release pipeline
  protosync publish --version 2.0.3         # Release, commit, tag and push
  protosync check-versions                  # Compare service pins

Run without a command to pick an action interactively.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.prepare(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInteractive(cmd)
		},
	}

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return perrors.NewUserInputError(err.Error())
	})

	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.servicesRoot, "services-root", "",
		"Directory holding the service repositories (default <repo-root>/../services)")
	flags.StringVar(&a.opts.repoRoot, "repo-root", "",
		"Central protocol repository (default: nearest ancestor with protos/ and buf.yaml)")
	flags.StringVar(&a.opts.configPath, "config", "",
		"Path to protosync.yml (searches the repository root if not specified)")
	flags.StringVar(&a.opts.logLevel, "log-level", "",
		"Diagnostic log level: debug, info, warn or error")
	flags.StringVar(&a.opts.metricsFile, "metrics-file", "",
		"Write prometheus metrics in textfile format to this path")
	flags.StringVar(&a.opts.python, "python", "",
		"Python interpreter used for pip and import checks")
	flags.BoolVar(&a.opts.noColor, "no-color", false,
		"Disable colored output")

	root.AddCommand(newStatusCmd(a))
	root.AddCommand(newSyncCmd(a))
	root.AddCommand(newCodegenCmd(a))
	root.AddCommand(newReleaseCmd(a))
	root.AddCommand(newPublishCmd(a))
	root.AddCommand(newCheckVersionsCmd(a))
	root.AddCommand(newBreakingCmd(a))
	root.AddCommand(newValidateImportsCmd(a))
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newWatchCmd(a))
	root.AddCommand(newVersionCmd())

	return root
}

// prepare resolves the repository root, configuration, logging and output.
// Flags win over the configuration file, which wins over defaults.
func (a *app) prepare(cmd *cobra.Command) error {
	defaults := config.DefaultConfig()

	repoRoot := a.opts.repoRoot
	if repoRoot == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		repoRoot = config.FindRepoRoot(cwd, defaults.ProtoDir)
	}
	repoRoot, err := filepath.Abs(repoRoot)
	if err != nil {
		return fmt.Errorf("failed to resolve repository root: %w", err)
	}

	cfg, source, err := config.Load(config.LoadOptions{ConfigPath: a.opts.configPath, RepoRoot: repoRoot})
	if err != nil {
		return err
	}
	if a.opts.python != "" {
		cfg.Python = a.opts.python
	}
	if a.opts.metricsFile != "" {
		cfg.MetricsFile = a.opts.metricsFile
	}
	if a.opts.noColor {
		cfg.NoColor = true
	}
	if a.opts.logLevel != "" {
		cfg.Logging.Level = a.opts.logLevel
	}

	level, err := logger.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return perrors.NewUserInputError(err.Error(), "debug", "info", "warn", "error")
	}
	logger.Configure(logger.Config{
		Level:   level,
		Output:  cmd.ErrOrStderr(),
		Format:  cfg.Logging.Format,
		Mode:    cmd.Name(),
		NoColor: cfg.NoColor,
	})

	servicesRoot := cfg.ServicesRootFor(repoRoot)
	if a.opts.servicesRoot != "" {
		if servicesRoot, err = filepath.Abs(a.opts.servicesRoot); err != nil {
			return fmt.Errorf("failed to resolve services root: %w", err)
		}
	}

	a.cfg = cfg
	a.configSource = source
	a.repoRoot = repoRoot
	a.servicesRoot = servicesRoot
	a.console = report.NewConsole(cmd.OutOrStdout(), report.ConsoleOptions{
		NoColor: cfg.NoColor,
		Verbose: logger.Global().IsDebugEnabled(),
	})
	if cfg.MetricsFile != "" {
		a.metrics = metrics.New()
		a.metricsFile = cfg.MetricsFile
	}

	logger.Debug("configuration resolved",
		"source", source,
		"repo_root", repoRoot,
		"services_root", servicesRoot)
	return nil
}

func (a *app) flushMetrics() error {
	if a.metrics == nil || a.metricsFile == "" {
		return nil
	}
	return a.metrics.WriteTextfile(a.metricsFile, a.now())
}
