package random

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringUsesAlphabet(t *testing.T) {
	r := New()

	s := r.String(32, IDAlphabet)
	assert.Len(t, s, 32)
	for _, c := range s {
		assert.True(t, strings.ContainsRune(IDAlphabet, c), "unexpected rune %q", c)
	}
}

func TestStringEmptyInputs(t *testing.T) {
	r := New()

	assert.Empty(t, r.String(0, IDAlphabet))
	assert.Empty(t, r.String(8, ""))
}
