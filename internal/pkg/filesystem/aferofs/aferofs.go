// Package aferofs implements the filesystem.Fs interface using the afero library.
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

// Fs provides filesystem operations on top of an afero backend.
type Fs struct {
	logger   log.Logger
	backend  *afero.Afero
	name     string
	basePath string
}

func New(logger log.Logger, backend afero.Fs, name, basePath string) *Fs {
	return &Fs{logger: logger, backend: &afero.Afero{Fs: backend}, name: name, basePath: basePath}
}

// Backend returns the underlying afero filesystem.
func (fs *Fs) Backend() afero.Fs {
	return fs.backend.Fs
}

func (fs *Fs) Name() string {
	return fs.name
}

func (fs *Fs) BasePath() string {
	return fs.basePath
}

func (fs *Fs) SetLogger(logger log.Logger) {
	fs.logger = logger
}

func (fs *Fs) Walk(root string, walkFn filepath.WalkFunc) error {
	return fs.backend.Walk(root, walkFn)
}

func (fs *Fs) Glob(pattern string) (matches []string, err error) {
	return afero.Glob(fs.backend, pattern)
}

func (fs *Fs) Stat(path string) (os.FileInfo, error) {
	return fs.backend.Stat(path)
}

func (fs *Fs) ReadDir(path string) ([]os.FileInfo, error) {
	return fs.backend.ReadDir(path)
}

func (fs *Fs) Mkdir(path string) error {
	if err := fs.backend.MkdirAll(path, 0o755); err != nil {
		return errors.Errorf(`cannot create directory "%s": %w`, path, err)
	}
	return nil
}

func (fs *Fs) Exists(path string) bool {
	ok, err := fs.backend.Exists(path)
	return err == nil && ok
}

func (fs *Fs) IsFile(path string) bool {
	info, err := fs.backend.Stat(path)
	return err == nil && !info.IsDir()
}

func (fs *Fs) IsDir(path string) bool {
	info, err := fs.backend.Stat(path)
	return err == nil && info.IsDir()
}

func (fs *Fs) Create(name string) (afero.File, error) {
	return fs.backend.Create(name)
}

func (fs *Fs) Open(name string) (afero.File, error) {
	return fs.backend.Open(name)
}

func (fs *Fs) Remove(path string) error {
	if err := fs.backend.Remove(path); err != nil {
		return errors.Errorf(`cannot remove "%s": %w`, path, err)
	}
	return nil
}

func (fs *Fs) ReadFile(path, desc string) (*filesystem.File, error) {
	content, err := fs.backend.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf(`missing %s "%s"`, fileDesc(desc), path)
		}
		return nil, errors.Errorf(`cannot read %s "%s": %w`, fileDesc(desc), path, err)
	}

	fs.logger.Debugf(`Loaded "%s"`, path)
	return filesystem.NewFile(path, string(content)).SetDescription(desc), nil
}

func (fs *Fs) ReadJsonFile(path, desc string) (*filesystem.JsonFile, error) {
	file, err := fs.ReadFile(path, desc)
	if err != nil {
		return nil, err
	}
	return file.ToJsonFile()
}

func (fs *Fs) WriteFile(file *filesystem.File) error {
	if dir := filesystem.Dir(file.Path); dir != "." {
		if err := fs.Mkdir(dir); err != nil {
			return err
		}
	}

	if err := fs.backend.WriteFile(file.Path, []byte(file.Content), 0o644); err != nil {
		return errors.Errorf(`cannot write %s "%s": %w`, fileDesc(file.Desc), file.Path, err)
	}

	fs.logger.Debugf(`Saved "%s"`, file.Path)
	return nil
}

func fileDesc(desc string) string {
	if len(desc) == 0 {
		return "file"
	}
	return desc + " file"
}
