package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiError_Empty(t *testing.T) {
	t.Parallel()
	errs := NewMultiError()
	assert.Equal(t, 0, errs.Len())
	assert.NoError(t, errs.ErrorOrNil())
}

func TestMultiError_Single(t *testing.T) {
	t.Parallel()
	errs := NewMultiError()
	errs.Append(New("some error"))
	assert.Equal(t, 1, errs.Len())
	assert.Error(t, errs.ErrorOrNil())

	// Single error is formatted without a bullet
	assert.Equal(t, "some error", errs.Error())
}

func TestMultiError_Flatten(t *testing.T) {
	t.Parallel()
	sub := NewMultiError()
	sub.Append(New("foo 1"))
	sub.Append(New("foo 2"))

	errs := NewMultiError()
	errs.Append(New("bar"))
	errs.Append(sub)
	assert.Equal(t, 3, errs.Len())
	assert.Equal(t, "- bar\n- foo 1\n- foo 2", errs.Error())
}

func TestMultiError_Is(t *testing.T) {
	t.Parallel()
	target := New("target error")
	errs := NewMultiError()
	errs.Append(New("other error"))
	errs.Append(Errorf("wrapped: %w", target))
	assert.True(t, Is(errs.ErrorOrNil(), target))
}

func TestNestedError_Is(t *testing.T) {
	t.Parallel()
	target := New("target error")
	err := PrefixError(target, "some prefix")
	assert.True(t, Is(err, target))
}

func TestNestedError_LongSub(t *testing.T) {
	t.Parallel()
	err := PrefixError(
		New("a very long sub error message, it does not fit on the prefix line"),
		"some prefix",
	)
	assert.Equal(
		t,
		"some prefix:\n- a very long sub error message, it does not fit on the prefix line",
		err.Error(),
	)
}

func TestMultiError_MultilineMessage(t *testing.T) {
	t.Parallel()
	errs := NewMultiError()
	errs.Append(New("first line\nsecond line"))
	errs.Append(New("other"))

	// Lines of a multiline message are aligned under the bullet
	assert.Equal(t, "- first line\n  second line\n- other", errs.Error())
}
