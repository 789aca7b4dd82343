package json

import (
	"testing"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCompact(t *testing.T) {
	t.Parallel()
	m := orderedmap.New()
	m.Set(`foo`, `bar`)
	m.Set(`baz`, 123)
	assert.Equal(t, `{"foo":"bar","baz":123}`, MustEncodeString(m, false))
}

func TestEncodePretty(t *testing.T) {
	t.Parallel()
	m := orderedmap.New()
	m.Set(`foo`, `bar`)
	expected := "{\n    \"foo\": \"bar\"\n}\n"
	assert.Equal(t, expected, MustEncodeString(m, true))
}

func TestDecodeOrdered(t *testing.T) {
	t.Parallel()
	m := orderedmap.New()
	require.NoError(t, DecodeString(`{"z":1,"a":2,"m":3}`, m))
	assert.Equal(t, []string{"z", "a", "m"}, m.Keys())
}

func TestDecodeValueObject(t *testing.T) {
	t.Parallel()
	value, err := DecodeValueString(`{"z":{"b":1,"a":2},"a":"x"}`)
	require.NoError(t, err)

	m, ok := value.(*orderedmap.OrderedMap)
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a"}, m.Keys())

	nested, found := m.Get(`z`)
	require.True(t, found)
	assert.Equal(t, []string{"b", "a"}, nested.(*orderedmap.OrderedMap).Keys())
}

func TestDecodeValueArray(t *testing.T) {
	t.Parallel()
	value, err := DecodeValueString(`[{"z":1,"a":2},"str",123]`)
	require.NoError(t, err)

	slice, ok := value.([]interface{})
	require.True(t, ok)
	require.Len(t, slice, 3)
	assert.Equal(t, []string{"z", "a"}, slice[0].(*orderedmap.OrderedMap).Keys())
	assert.Equal(t, "str", slice[1])
}

func TestDecodeValueScalar(t *testing.T) {
	t.Parallel()
	value, err := DecodeValueString(`"some string"`)
	require.NoError(t, err)
	assert.Equal(t, `some string`, value)
}

func TestDecodeValueInvalid(t *testing.T) {
	t.Parallel()
	_, err := DecodeValueString(`{"foo":`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `offset`)
}

func TestDecodeSyntaxError(t *testing.T) {
	t.Parallel()
	var v interface{}
	err := DecodeString(`{"foo":1x}`, &v)
	require.Error(t, err)
	assert.Equal(t, `invalid character 'x' after object key:value pair, offset: 9`, err.Error())
}
