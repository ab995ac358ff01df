package fault

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByCode(t *testing.T) {
	err := Wrap(CodeFetch, "download manifest", errors.New("connection refused"))

	assert.True(t, errors.Is(err, ErrFetch))
	assert.False(t, errors.Is(err, ErrIO))
	assert.Equal(t, "download manifest: connection refused", err.Error())
}

func TestIsThroughFmtWrapping(t *testing.T) {
	inner := New(CodeIncompleteDataset, "no Oracle Cards dataset")
	err := fmt.Errorf("sync: %w", inner)

	assert.True(t, errors.Is(err, ErrIncompleteDataset))
	assert.Equal(t, CodeIncompleteDataset, CodeOf(err))
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, Code(""), CodeOf(errors.New("plain")))
	assert.Equal(t, Code(""), CodeOf(nil))
}
