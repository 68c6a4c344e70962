package ir

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompileErrorFormatting(t *testing.T) {
	span := Span{SourceID: 1, Start: 5, End: 9}

	withoutDetail := &CompileError{Span: span, Kind: ErrMissingType}
	assert.Equal(t, "1:5-9: missing-type", withoutDetail.Error())

	withDetail := NewCompileError(span, ErrItemConflict, "item %s already declared", "foo::bar")
	assert.Equal(t, "1:5-9: item-conflict: item foo::bar already declared", withDetail.Error())
}

func TestCompileErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	wrapped := WrapCompileError(NoSpan, ErrParseError, inner)

	assert.ErrorIs(t, wrapped, inner)
	assert.Contains(t, wrapped.Error(), "boom")
}

func TestUsedIsUnused(t *testing.T) {
	assert.True(t, Unused.IsUnused())
	assert.False(t, UsedValue.IsUnused())
}
