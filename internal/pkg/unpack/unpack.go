// Package unpack splits a saved objects NDJSON bundle into individual JSON files.
//
// Every line of the bundle becomes one primary file. Designated string fields
// holding encoded JSON documents are decoded into side files and optionally
// replaced by {"$ref": <file>} markers, so the documents can be edited by hand
// and diffed.
package unpack

import (
	"bufio"
	"io"
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
	PrettyPrint    bool     `json:"prettyPrint"`
	WithReferences bool     `json:"withReferences"`
	Paths          []string `json:"paths" validate:"required,min=1,dive,required"`
}

func DefaultOptions() Options {
	return Options{
		PrettyPrint:    true,
		WithReferences: true,
		Paths:          model.ExtractionPaths(),
	}
}

type dependencies interface {
	Logger() log.Logger
	Fs() filesystem.Fs
}

type Result struct {
	// Written file paths, side files of a document precede its primary file.
	Written   []string
	Records   int // documents written
	Summaries int // skipped summary records
	SideFiles int // extracted side files
}

// Run reads the bundle line by line and writes the files to the filesystem root.
// Any malformed line stops the processing, already written files are kept.
func Run(input io.Reader, o Options, d dependencies) (*Result, error) {
	if err := validator.Validate(o); err != nil {
		return nil, errors.PrefixError(err, "invalid unpack options")
	}

	logger := d.Logger()
	fs := d.Fs()
	generator := naming.NewGenerator(naming.TemplateDefault())
	result := &Result{}

	// Lines are unbounded, a single dashboard can hold megabytes of encoded panels
	reader := bufio.NewReader(input)
	lineNo := 0
	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, readErr
		}
		if line == "" && readErr == io.EOF {
			break
		}

		lineNo++
		if err := unpackLine(line, lineNo, o, generator, fs, logger, result); err != nil {
			return nil, err
		}

		if readErr == io.EOF {
			break
		}
	}

	return result, nil
}

func unpackLine(line string, lineNo int, o Options, generator *naming.Generator, fs filesystem.Fs, logger log.Logger, result *Result) error {
	value, err := json.DecodeValueString(strings.TrimSpace(line))
	if err != nil {
		return errors.PrefixErrorf(err, "line %d is not valid JSON", lineNo)
	}

	// The terminal summary record is skipped, it is never written out
	if doc, ok := value.(*orderedmap.OrderedMap); ok && model.IsSummary(doc) {
		logger.Debugf("Line %d is the export summary, skipped", lineNo)
		result.Summaries++
		return nil
	}

	// File names are derived from the id
	idValue, err := dotpath.Lookup(value, model.FieldID)
	if err != nil {
		return errors.PrefixErrorf(err, "line %d", lineNo)
	}
	id, ok := idValue.(string)
	if !ok {
		return errors.Errorf(`line %d: key "id" must be a string, found "%T"`, lineNo, idValue)
	}
	doc := value.(*orderedmap.OrderedMap)

	// Extract designated fields into side files
	for _, fieldPath := range o.Paths {
		raw, err := dotpath.Lookup(doc, fieldPath)
		if err != nil {
			// The path is not present in this document
			logger.Debugf(`Line %d: path "%s" is not present, skipped`, lineNo, fieldPath)
			continue
		}

		encoded, ok := raw.(string)
		if !ok {
			return errors.Errorf(`line %d: value at "%s" must be a JSON-encoded string, found "%T"`, lineNo, fieldPath, raw)
		}

		subDoc, err := json.DecodeValueString(encoded)
		if err != nil {
			return errors.PrefixErrorf(err, `line %d: value at "%s" is not valid JSON`, lineNo, fieldPath)
		}

		sidePath := generator.SideFilePath(id, fieldPath)
		sideFile, err := filesystem.NewJsonFile(sidePath, subDoc).SetDescription("extracted value").ToFile(o.PrettyPrint)
		if err != nil {
			return err
		}
		if err := fs.WriteFile(sideFile); err != nil {
			return err
		}
		result.Written = append(result.Written, sidePath)
		result.SideFiles++

		if o.WithReferences {
			// The path has just been resolved, set cannot fail
			if err := dotpath.Set(doc, fieldPath, model.NewReference(sidePath)); err != nil {
				return errors.PrefixErrorf(err, "line %d", lineNo)
			}
		}
	}

	// Write the primary document
	primaryPath := generator.PrimaryFilePath(id)
	primaryFile, err := filesystem.NewJsonFile(primaryPath, doc).SetDescription("saved object").ToFile(o.PrettyPrint)
	if err != nil {
		return err
	}
	if err := fs.WriteFile(primaryFile); err != nil {
		return err
	}
	result.Written = append(result.Written, primaryPath)
	result.Records++

	// Progress line, both fields are required
	typeValue, err := dotpath.Lookup(doc, model.FieldType)
	if err != nil {
		return errors.PrefixErrorf(err, "line %d", lineNo)
	}
	titleValue, err := dotpath.Lookup(doc, model.TitlePath)
	if err != nil {
		return errors.PrefixErrorf(err, "line %d", lineNo)
	}
	logger.Infof("%s %v %v", primaryPath, typeValue, titleValue)

	return nil
}
