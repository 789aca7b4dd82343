package json

import (
	"bytes"
	"encoding/json"

	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/osdpack/osdpack/internal/pkg/utils/errors"
)

func Encode(v interface{}, pretty bool) ([]byte, error) {
	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(v, "", "    ")
		data = append(data, '\n')
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, processJSONError(err)
	}
	return data, nil
}

func MustEncode(v interface{}, pretty bool) []byte {
	data, err := Encode(v, pretty)
	if err != nil {
		panic(err)
	}
	return data
}

func EncodeString(v interface{}, pretty bool) (string, error) {
	data, err := Encode(v, pretty)
	return string(data), err
}

func MustEncodeString(v interface{}, pretty bool) string {
	data, err := EncodeString(v, pretty)
	if err != nil {
		panic(err)
	}
	return data
}

func Decode(data []byte, m interface{}) error {
	err := json.Unmarshal(data, m)
	if err != nil {
		return processJSONError(err)
	}
	return nil
}

func MustDecode(data []byte, m interface{}) {
	if err := Decode(data, m); err != nil {
		panic(err)
	}
}

func DecodeString(data string, m interface{}) error {
	return Decode([]byte(data), m)
}

func MustDecodeString(data string, m interface{}) {
	if err := DecodeString(data, m); err != nil {
		panic(err)
	}
}

// DecodeValue decodes an arbitrary JSON value.
// Objects are decoded to *orderedmap.OrderedMap, so the key order is preserved,
// also in objects nested in arrays.
func DecodeValue(data []byte) (interface{}, error) {
	trimmed := bytes.TrimSpace(data)

	// Object
	if len(trimmed) > 0 && trimmed[0] == '{' {
		m := orderedmap.New()
		if err := Decode(trimmed, m); err != nil {
			return nil, err
		}
		return m, nil
	}

	// Other value, wrap it to an object, so nested objects are decoded to ordered maps too.
	wrapped := orderedmap.New()
	doc := append(append([]byte(`{"value":`), trimmed...), '}')
	if err := Decode(doc, wrapped); err != nil {
		// Decode the original document, so the error refers to the original offsets.
		var v interface{}
		if origErr := Decode(trimmed, &v); origErr != nil {
			return nil, origErr
		}
		return nil, err
	}

	value, _ := wrapped.Get(`value`)
	return value, nil
}

func DecodeValueString(data string) (interface{}, error) {
	return DecodeValue([]byte(data))
}

func processJSONError(err error) error {
	switch err := err.(type) {
	// Custom error message
	case *json.UnmarshalTypeError:
		return errors.Errorf("key \"%s\" has invalid type \"%s\"", err.Field, err.Value)
	case *json.SyntaxError:
		return errors.Errorf("%s, offset: %d", err, err.Offset)
	default:
		return err
	}
}
