// Package model defines the structure of a saved objects export bundle.
//
// A bundle is a NDJSON stream, one saved object per line, optionally terminated
// by a summary record. Designated fields of a saved object hold nested JSON
// documents encoded into plain strings, see ExtractionPaths.
package model

import (
	"github.com/keboola/go-utils/pkg/orderedmap"
)

const (
	FieldID   = "id"
	FieldType = "type"
	TitlePath = "attributes.title"
	TypeQuery = "query"
	RefKey    = "$ref"
)

// ExtractionPaths returns the dotted paths whose string values hold encoded JSON documents.
// During unpack the values are decoded and written into side files, in this fixed order.
func ExtractionPaths() []string {
	return []string{
		"attributes.visState",
		"attributes.kibanaSavedObjectMeta.searchSourceJSON",
		"attributes.fields",
		"attributes.panelsJSON",
	}
}

// IsSummary returns true if the document is the terminal export summary record.
// The summary record has no type field, it is detected by its exact key set.
func IsSummary(doc *orderedmap.OrderedMap) bool {
	if doc.Len() != 3 {
		return false
	}
	for _, key := range []string{"exportedCount", "missingRefCount", "missingReferences"} {
		if _, found := doc.Get(key); !found {
			return false
		}
	}
	return true
}

// NewReference creates the {"$ref": <filename>} marker
// that replaces an extracted value in the primary document.
func NewReference(filename string) *orderedmap.OrderedMap {
	marker := orderedmap.New()
	marker.Set(RefKey, filename)
	return marker
}

// IsQuery returns true if the value is a document with type "query".
// Query ids commonly contain underscores, repack must not mistake them for side files.
func IsQuery(value interface{}) bool {
	if doc, ok := value.(*orderedmap.OrderedMap); ok {
		return doc.GetOrNil(FieldType) == TypeQuery
	}
	return false
}
