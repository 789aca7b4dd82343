package filesystem

import (
	"strings"

	"github.com/osdpack/osdpack/internal/pkg/encoding/json"
	"github.com/osdpack/osdpack/internal/pkg/utils/errors"
)

// File is a raw file content loaded from or written to a filesystem.
type File struct {
	Desc    string
	Path    string
	Content string
}

func NewFile(path, content string) *File {
	return &File{Path: path, Content: content}
}

func (f *File) SetDescription(desc string) *File {
	f.Desc = desc
	return f
}

// ToJsonFile decodes the file content, objects are decoded to ordered maps.
func (f *File) ToJsonFile() (*JsonFile, error) {
	value, err := json.DecodeValueString(f.Content)
	if err != nil {
		return nil, errors.PrefixErrorf(err, `%s "%s" is invalid`, fileDesc(f.Desc), f.Path)
	}

	file := NewJsonFile(f.Path, value)
	file.Desc = f.Desc
	return file, nil
}

// JsonFile is a decoded JSON file.
// Content is an arbitrary JSON value, objects are represented by ordered maps.
type JsonFile struct {
	Desc    string
	Path    string
	Content interface{}
}

func NewJsonFile(path string, content interface{}) *JsonFile {
	return &JsonFile{Path: path, Content: content}
}

func (f *JsonFile) SetDescription(desc string) *JsonFile {
	f.Desc = desc
	return f
}

// ToFile encodes the content back to a raw file.
func (f *JsonFile) ToFile(pretty bool) (*File, error) {
	content, err := json.EncodeString(f.Content, pretty)
	if err != nil {
		return nil, errors.PrefixErrorf(err, `cannot encode %s "%s"`, fileDesc(f.Desc), f.Path)
	}

	file := NewFile(f.Path, content)
	file.Desc = f.Desc
	return file, nil
}

func fileDesc(desc string) string {
	return strings.TrimSpace(desc + " file")
}
