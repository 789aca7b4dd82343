package cli

import (
	"context"
	"io"
	"os"
	"path"
	"regexp"
	"time"

	"github.com/spf13/cobra"

	"github.com/osdpack/osdpack/internal/pkg/build"
	"github.com/osdpack/osdpack/internal/pkg/env"
	"github.com/osdpack/osdpack/internal/pkg/filesystem"
	"github.com/osdpack/osdpack/internal/pkg/log"
	"github.com/osdpack/osdpack/internal/pkg/options"
	"github.com/osdpack/osdpack/internal/pkg/utils"
	"github.com/osdpack/osdpack/internal/pkg/version"
)

const description = `
OpenSearch Dashboards Packer

Convert saved objects export bundles
in both directions [NDJSON] <-> [directory of JSON files].

Embedded JSON strings are extracted to side files,
so dashboards can be reviewed and versioned field by field.

Start by running the "unpack" sub-command on an export file.
`

const usageTemplate = `Usage:{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{else if .Runnable}}
  {{.UseLine}}{{end}}{{if gt (len .Aliases) 0}}

Aliases:`

type rootCommand struct {
	cmd         *cobra.Command
	fsFactory   filesystem.Factory
	fs          filesystem.Fs    // filesystem abstraction
	envs        *env.Map         // ENVs from OS
	options     *options.Options // parsed flags and env variables
	ctx         context.Context  // context for API calls
	stdout      io.Writer        // original stdout, raw NDJSON output bypasses the logger
	start       time.Time        // cmd start time
	initialized bool             // init method was called
	logFile     *log.File        // log file instance
	logger      log.Logger       // log to console and logFile
}

// NewRootCommand creates parent of all sub-commands.
func NewRootCommand(stdin io.ReadCloser, stdout io.WriteCloser, stderr io.WriteCloser, envs *env.Map, fsFactory filesystem.Factory) *rootCommand {
	root := &rootCommand{
		fsFactory: fsFactory,
		envs:      envs,
		options:   options.NewOptions(),
		ctx:       context.Background(),
		stdout:    stdout,
		start:     time.Now(),
	}

	// Command definition
	root.cmd = &cobra.Command{
		Use:          path.Base(os.Args[0]), // name of the binary
		Version:      version.Version(),
		Short:        description,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Print help if no command specified
			return root.cmd.Help()
		},
	}

	// Setup in/out
	root.cmd.SetIn(stdin)
	root.cmd.SetOut(stdout)
	root.cmd.SetErr(stderr)

	// Setup templates
	root.cmd.SetVersionTemplate("{{.Version}}")
	root.cmd.SetUsageTemplate(
		regexp.MustCompile(`Usage:(.|\n)*Aliases:`).ReplaceAllString(root.cmd.UsageTemplate(), usageTemplate),
	)

	// Persistent flags for all sub-commands
	flags := root.cmd.PersistentFlags()
	flags.SortFlags = true
	flags.BoolP("help", "h", false, "print help for command")
	flags.StringP("log-file", "l", "", "path to a log file for details")
	flags.StringP("working-dir", "d", "", "use other working directory")
	flags.BoolP("verbose", "v", false, "print details")
	flags.BoolP("verbose-api", "", false, "log each API request and response")

	// Root command flags
	root.cmd.Flags().SortFlags = true
	root.cmd.Flags().BoolP("version", "V", false, "print version")

	// Init when flags are parsed
	root.cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := root.init(cmd); err != nil {
			return err
		}

		versionChecker := version.NewGitHubChecker(root.ctx, root.logger, root.envs)
		if err := versionChecker.CheckIfLatest(build.BuildVersion); err != nil {
			// Ignore error, send to logs
			root.logger.Debugf(`Version check: %s.`, err.Error())
		}

		return nil
	}

	// Sub-commands
	root.cmd.AddCommand(
		unpackCommand(root),
		repackCommand(root),
	)

	return root
}

// Execute command or sub-command.
func (root *rootCommand) Execute() (exitCode int) {
	defer root.tearDown()
	if err := root.cmd.Execute(); err != nil {
		// Init, it can be uninitialized, if an error occurred before the PersistentPreRun call
		_ = root.init(root.cmd)
		// Error is already logged
		return 1
	}
	return 0
}

func (root *rootCommand) GetCommandByName(name string) *cobra.Command {
	for _, cmd := range root.cmd.Commands() {
		if cmd.Name() == name {
			return cmd
		}
	}

	return nil
}

// Logger for the sub-commands.
func (root *rootCommand) Logger() log.Logger {
	return root.logger
}

// Fs for the sub-commands.
func (root *rootCommand) Fs() filesystem.Fs {
	return root.fs
}

// tearDown makes clean-up after command execution.
func (root *rootCommand) tearDown() {
	if err := recover(); err == nil {
		// No error -> remove log file if temporary
		root.logFile.TearDown(false)
	} else {
		// Init, it can be uninitialized, if the panic occurred before the PersistentPreRun call
		_ = root.init(root.cmd)

		// Error -> process and keep log file
		exitCode := utils.ProcessPanic(err, root.logger, root.logFile.Path())
		root.logFile.TearDown(true)
		os.Exit(exitCode)
	}
}

// init sets logger and options after flags are parsed.
func (root *rootCommand) init(cmd *cobra.Command) (err error) {
	if root.initialized {
		return
	}

	// Run only once
	root.initialized = true

	// Logger must always be set up, even if an error occurs before
	memLogger := log.NewMemoryLogger()
	defer func() {
		if root.logger == nil {
			root.setupLogger(memLogger)
		}
	}()

	// Create filesystem abstraction
	workingDir, _ := cmd.Flags().GetString(`working-dir`)
	if root.fs, err = root.fsFactory(memLogger, workingDir); err != nil {
		return err
	}

	// Load values from flags and envs
	if err = root.options.Load(memLogger, root.envs, root.fs, cmd.Flags()); err != nil {
		return err
	}

	// Setup logger, replay load messages
	root.setupLogger(memLogger)
	root.logDebugInfo()
	root.fs.SetLogger(root.logger)

	return nil
}

// setupLogger according to the options.
func (root *rootCommand) setupLogger(memLogger log.MemoryLogger) {
	logFile, logFileErr := log.NewLogFile(root.options.GetString("log-file"))
	root.logFile = logFile
	root.logger = log.NewCliLogger(root.cmd.OutOrStdout(), root.cmd.ErrOrStderr(), logFile, root.options.GetBool("verbose"))
	root.cmd.SetOut(root.logger.InfoWriter())
	root.cmd.SetErr(root.logger.WarnWriter())

	// Messages logged before the logger was ready
	memLogger.CopyLogsTo(root.logger)

	// Warn if user specified log file and it cannot be opened
	if logFileErr != nil && root.options.GetString("log-file") != "" {
		root.logger.Warnf("Cannot open log file: %s", logFileErr)
	}
}

func (root *rootCommand) logDebugInfo() {
	// Version
	root.logger.DebugWriter().WriteString(root.cmd.Version)

	// Command
	root.logger.Debugf("Running command %v", os.Args)

	// Options
	root.logger.Debug(root.options.Dump())
}
