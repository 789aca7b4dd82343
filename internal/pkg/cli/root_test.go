package cli

import (
	"io"
	"regexp"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osdpack/osdpack/internal/pkg/env"
	"github.com/osdpack/osdpack/internal/pkg/filesystem"
	"github.com/osdpack/osdpack/internal/pkg/filesystem/aferofs"
	"github.com/osdpack/osdpack/internal/pkg/log"
	"github.com/osdpack/osdpack/internal/pkg/utils/ioutil"
)

func TestRootSubCommands(t *testing.T) {
	t.Parallel()
	root, _, _ := newTestRootCommand(t)

	// Map commands to names
	var names []string
	for _, cmd := range root.cmd.Commands() {
		names = append(names, cmd.Name())
	}

	// Assert
	assert.Equal(t, []string{
		"repack",
		"unpack",
	}, names)
}

func TestRootCmdPersistentFlags(t *testing.T) {
	t.Parallel()
	root, _, _ := newTestRootCommand(t)

	// Map flags to names
	var names []string
	root.cmd.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		names = append(names, flag.Name)
	})

	// Assert
	expected := []string{
		"help",
		"log-file",
		"verbose",
		"verbose-api",
		"working-dir",
	}
	assert.Equal(t, expected, names)
}

func TestRootCmdFlags(t *testing.T) {
	t.Parallel()
	root, _, _ := newTestRootCommand(t)

	// Map flags to names
	var names []string
	root.cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		names = append(names, flag.Name)
	})

	// Assert
	expected := []string{
		"version",
	}
	assert.Equal(t, expected, names)
}

func TestExecuteHelp(t *testing.T) {
	t.Parallel()
	root, _, out := newTestRootCommand(t)

	// No sub-command -> print help
	assert.Equal(t, 0, root.Execute())
	assert.Contains(t, out.String(), "Available Commands:")
}

func TestInit(t *testing.T) {
	t.Parallel()
	root, _, _ := newTestRootCommand(t)
	assert.False(t, root.initialized)
	assert.Nil(t, root.logger)
	err := root.init(root.cmd)
	assert.NoError(t, err)
	assert.True(t, root.initialized)
	assert.NotNil(t, root.logger)
	root.logFile.TearDown(false)
}

func TestLogVersion(t *testing.T) {
	t.Parallel()
	root, _, _ := newTestRootCommand(t)

	// Log version
	err := root.init(root.cmd)
	assert.NoError(t, err)
	root.logFile.TearDown(false)
	logger := log.NewDebugLogger()
	root.logger = logger
	root.logDebugInfo()

	// Assert
	assert.Regexp(
		t,
		`^`+
			`DEBUG  Version:    .*\n`+
			`DEBUG  Git commit: .*\n`+
			`DEBUG  Build date: .*\n`+
			`DEBUG  Go version: `+regexp.QuoteMeta(runtime.Version())+`\n`+
			`DEBUG  Os/Arch:    `+regexp.QuoteMeta(runtime.GOOS+`/`+runtime.GOARCH)+`\n`+
			`DEBUG  Running command \[.+\]\n`+
			`DEBUG  Parsed options:`,
		logger.AllMessages(),
	)
}

func newTestRootCommand(t *testing.T) (*rootCommand, filesystem.Fs, *ioutil.AtomicWriter) {
	t.Helper()

	fs, err := aferofs.NewMemoryFs(log.NewNopLogger(), "/")
	require.NoError(t, err)
	fsFactory := func(logger log.Logger, workingDir string) (filesystem.Fs, error) {
		return fs, nil
	}

	// The tests must not call GitHub
	envs := env.Empty()
	envs.Set("OSDPACK_VERSION_CHECK", "false")

	in := io.NopCloser(strings.NewReader(""))
	out := ioutil.NewAtomicWriter()
	return NewRootCommand(in, out, out, envs, fsFactory), fs, out
}
