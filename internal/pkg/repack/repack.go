// Package repack merges a directory of JSON files back into a saved objects
// NDJSON bundle.
//
// Files are matched by name: "<stem>_<field.path>.json" is a side file, its
// content is re-encoded to a JSON string and stored at <field.path> inside the
// document loaded from "<stem>.json". Everything else becomes one bundle line.
package repack

import (
	"sort"
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/osdpack/osdpack/internal/pkg/dotpath"
	"github.com/osdpack/osdpack/internal/pkg/encoding/json"
	"github.com/osdpack/osdpack/internal/pkg/filesystem"
	"github.com/osdpack/osdpack/internal/pkg/log"
	"github.com/osdpack/osdpack/internal/pkg/model"
	"github.com/osdpack/osdpack/internal/pkg/naming"
	"github.com/osdpack/osdpack/internal/pkg/utils/errors"
	"github.com/osdpack/osdpack/internal/pkg/validator"
)

type Options struct {
	// Paths are JSON files or directories scanned for "*.json".
	Paths []string `json:"paths" validate:"required,min=1,dive,required"`
}

type dependencies interface {
	Logger() log.Logger
	Fs() filesystem.Fs
}

type Result struct {
	// NDJSON is the bundle, one line per document, no trailing newline.
	NDJSON    string
	Documents int
}

// merge is a planned side file application, recorded before any document is modified.
type merge struct {
	key       string
	targetKey string
	fieldPath string
}

func Run(o Options, d dependencies) (*Result, error) {
	if err := validator.Validate(o); err != nil {
		return nil, errors.PrefixError(err, "invalid repack options")
	}

	logger := d.Logger()
	fs := d.Fs()

	paths, err := expandInputs(fs, o.Paths)
	if err != nil {
		return nil, err
	}

	// Load all documents first, keyed by file stem, a later duplicate replaces
	// an earlier one in place.
	docs := orderedmap.New()
	for _, path := range paths {
		file, err := fs.ReadJsonFile(path, "document")
		if err != nil {
			return nil, err
		}
		docs.Set(naming.Stem(path), file.Content)
	}

	for _, m := range classify(docs, logger) {
		if err := apply(docs, m); err != nil {
			return nil, err
		}
		logger.Debugf(`Merged "%s" into "%s"`, m.key, m.targetKey)
	}

	// Remaining documents in load order form the bundle
	lines := make([]string, 0, docs.Len())
	for _, key := range docs.Keys() {
		value, _ := docs.Get(key)
		lines = append(lines, json.MustEncodeString(value, false))
	}

	return &Result{NDJSON: strings.Join(lines, "\n"), Documents: docs.Len()}, nil
}

// expandInputs replaces directories by their "*.json" files, in name order.
func expandInputs(fs filesystem.Fs, inputs []string) ([]string, error) {
	var paths []string
	for _, input := range inputs {
		switch {
		case fs.IsDir(input):
			matches, err := fs.Glob(filesystem.Join(input, "*.json"))
			if err != nil {
				return nil, err
			}
			sort.Strings(matches)
			paths = append(paths, matches...)
		case fs.IsFile(input):
			paths = append(paths, input)
		default:
			return nil, errors.Errorf(`input "%s" not found`, input)
		}
	}
	return paths, nil
}

// classify plans all side file merges before any document is modified.
// A stem with an underscore marks a side file, unless the document itself
// is a saved query, those legitimately contain underscores in the id.
func classify(docs *orderedmap.OrderedMap, logger log.Logger) []merge {
	keys := append([]string(nil), docs.Keys()...)
	sort.Strings(keys)

	var merges []merge
	for _, key := range keys {
		targetKey, fieldPath, ok := naming.ParseStem(key)
		if !ok {
			continue
		}
		value, _ := docs.Get(key)
		if model.IsQuery(value) {
			logger.Debugf(`Document "%s" is a saved query, not a side file`, key)
			continue
		}
		merges = append(merges, merge{key: key, targetKey: targetKey, fieldPath: fieldPath})
	}
	return merges
}

// apply removes the side document and stores it, re-encoded to a JSON string,
// inside the target document.
func apply(docs *orderedmap.OrderedMap, m merge) error {
	targetValue, found := docs.Get(m.targetKey)
	if !found {
		return errors.Errorf(`cannot merge "%s": document "%s" not found`, m.key, m.targetKey)
	}
	target, ok := targetValue.(*orderedmap.OrderedMap)
	if !ok {
		return errors.Errorf(`cannot merge "%s": document "%s" is not an object`, m.key, m.targetKey)
	}

	value, _ := docs.Get(m.key)
	docs.Delete(m.key)

	if err := dotpath.Set(target, m.fieldPath, json.MustEncodeString(value, false)); err != nil {
		return errors.PrefixErrorf(err, `cannot merge "%s" into "%s"`, m.key, m.targetKey)
	}
	return nil
}
