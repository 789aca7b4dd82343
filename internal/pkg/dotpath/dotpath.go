// Package dotpath resolves dotted key paths in decoded JSON documents.
// A path is a chain of object keys joined by ".", there is no escaping for dots in key names.
package dotpath

import (
	"fmt"
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/osdpack/osdpack/internal/pkg/utils/errors"
)

// ErrPathNotFound is wrapped by both resolution error types,
// for callers that only need "the path did not resolve".
var ErrPathNotFound = errors.New("path not found")

// KeyNotFoundError is returned when a path segment is not present in its parent object.
type KeyNotFoundError struct {
	Key string // dotted path of the missing key
}

func (e KeyNotFoundError) Error() string {
	return fmt.Sprintf(`key "%s" not found`, e.Key)
}

func (e KeyNotFoundError) Unwrap() error {
	return ErrPathNotFound
}

// NotAMappingError is returned when a path segment resolves to a value that is not an object.
type NotAMappingError struct {
	Key   string // dotted path of the value, empty if the value is the root
	Value interface{}
}

func (e NotAMappingError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf(`expected object, found "%T"`, e.Value)
	}
	return fmt.Sprintf(`key "%s": expected object, found "%T"`, e.Key, e.Value)
}

func (e NotAMappingError) Unwrap() error {
	return ErrPathNotFound
}

// Lookup returns the value at the path.
// An empty path returns the root itself.
func Lookup(root interface{}, path string) (interface{}, error) {
	if path == "" {
		return root, nil
	}

	keys := strings.Split(path, ".")
	current := root
	for i, key := range keys {
		m, ok := current.(*orderedmap.OrderedMap)
		if !ok {
			return nil, NotAMappingError{Key: strings.Join(keys[:i], "."), Value: current}
		}

		value, found := m.Get(key)
		if !found {
			return nil, KeyNotFoundError{Key: strings.Join(keys[:i+1], ".")}
		}
		current = value
	}

	return current, nil
}

// Set writes the value at the path, the root is modified in place.
// The last key is created if it is absent, missing intermediate objects are never created.
// An empty path or a nil root is a contract violation and causes a panic.
func Set(root *orderedmap.OrderedMap, path string, value interface{}) error {
	if path == "" {
		panic(errors.New("path cannot be empty"))
	}
	if root == nil {
		panic(errors.New("root cannot be nil"))
	}

	keys := strings.Split(path, ".")
	current := root
	for i, key := range keys[:len(keys)-1] {
		nested, found := current.Get(key)
		if !found {
			return KeyNotFoundError{Key: strings.Join(keys[:i+1], ".")}
		}

		m, ok := nested.(*orderedmap.OrderedMap)
		if !ok {
			return NotAMappingError{Key: strings.Join(keys[:i+1], "."), Value: nested}
		}
		current = m
	}

	current.Set(keys[len(keys)-1], value)
	return nil
}
