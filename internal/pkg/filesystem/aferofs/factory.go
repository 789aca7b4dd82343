// nolint: forbidigo
package aferofs

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/osdpack/osdpack/internal/pkg/filesystem"
	"github.com/osdpack/osdpack/internal/pkg/log"
	"github.com/osdpack/osdpack/internal/pkg/utils/errors"
)

// NewLocalFs creates a filesystem rooted at the working dir.
func NewLocalFs(logger log.Logger, workingDir string) (fs filesystem.Fs, err error) {
	if workingDir == "" {
		workingDir, err = os.Getwd()
		if err != nil {
			return nil, errors.Errorf(`cannot get working dir from OS: %w`, err)
		}
	}

	// Convert working dir path to absolute
	workingDir, err = filepath.Abs(workingDir)
	if err != nil {
		return nil, err
	}

	// Working dir must exist
	if info, err := os.Stat(workingDir); err != nil {
		return nil, errors.Errorf(`working dir "%s" not found`, workingDir)
	} else if !info.IsDir() {
		return nil, errors.Errorf(`working dir "%s" is not a directory`, workingDir)
	}

	return New(logger, afero.NewBasePathFs(afero.NewOsFs(), workingDir), "local", workingDir), nil
}

// NewMemoryFs creates an in-memory filesystem, it is used in tests.
func NewMemoryFs(logger log.Logger, workingDir string) (fs filesystem.Fs, err error) {
	return New(logger, afero.NewMemMapFs(), "memory", "/"), nil
}
