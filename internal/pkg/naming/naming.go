// Package naming converts saved object ids to file paths and back.
package naming

import (
	"path/filepath"
	"strings"

	"github.com/umisama/go-regexpcache"

	"github.com/osdpack/osdpack/internal/pkg/utils/strhelper"
)

// Characters that cannot be used in a file name, they are replaced by "_".
const illegalChars = `[/ ,?%*:|"<>]`

// Template defines the generated file names.
type Template struct {
	Primary  string // primary document file
	SideFile string // extracted sub-document file
}

func TemplateDefault() Template {
	return Template{
		Primary:  `{object_id}.json`,
		SideFile: `{object_id}_{field_path}.json`,
	}
}

type Generator struct {
	template Template
}

func NewGenerator(template Template) *Generator {
	return &Generator{template: template}
}

// SanitizeObjectID replaces characters that cannot be used in a file name.
// Two ids that differ only in illegal characters can collide, no deduplication is done.
func SanitizeObjectID(id string) string {
	return regexpcache.MustCompile(illegalChars).ReplaceAllString(id, "_")
}

// PrimaryFilePath returns the file name of the primary document.
func (g Generator) PrimaryFilePath(objectID string) string {
	return strhelper.ReplacePlaceholders(g.template.Primary, map[string]interface{}{
		"object_id": SanitizeObjectID(objectID),
	})
}

// SideFilePath returns the file name of an extracted sub-document.
// Dots of the field path are kept verbatim in the file name.
func (g Generator) SideFilePath(objectID, fieldPath string) string {
	return strhelper.ReplacePlaceholders(g.template.SideFile, map[string]interface{}{
		"object_id":  SanitizeObjectID(objectID),
		"field_path": fieldPath,
	})
}

// Stem returns the file name without the directory and without the last extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ParseStem splits a stem on the FIRST underscore into the target document name
// and the dotted field path of the extracted value.
// Ok is false if the stem contains no underscore, then the stem names a primary document.
func ParseStem(stem string) (targetKey, fieldPath string, ok bool) {
	return strings.Cut(stem, "_")
}
