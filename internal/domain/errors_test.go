package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeError(t *testing.T) {
	err := composeErrorf(OrphanedCompanion, "a/Foo", "companion %s not found", "Foo.Companion")

	assert.Equal(t, "orphaned companion: a/Foo (companion Foo.Companion not found)", err.Error())

	err.Path = "a/Foo.kt"
	assert.Equal(t, "a/Foo.kt: orphaned companion: a/Foo (companion Foo.Companion not found)", err.Error())

	wrapped := fmt.Errorf("compose: %w", err)
	assert.ErrorIs(t, wrapped, ErrOrphanedCompanion)
	assert.NotErrorIs(t, wrapped, ErrOrphanedLocalClass)
	assert.Equal(t, OrphanedCompanion, KindOf(wrapped))
}

func TestErrorKind_String(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{OrphanedLocalClass, "orphaned local class"},
		{OrphanedNestedClass, "orphaned nested class"},
		{OrphanedCompanion, "orphaned companion"},
		{OrphanedDefaultImpl, "orphaned default impl"},
		{AmbiguousDefaultValueWrapper, "ambiguous default value wrapper"},
		{UnresolvedEnclosingFunction, "unresolved enclosing function"},
		{ErrorKind(0), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, ErrorKind(0), KindOf(errors.New("plain")))
	assert.Equal(t, ErrorKind(0), KindOf(nil))
}
