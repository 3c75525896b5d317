package pkg

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

type faultyWriter struct{}

func (fw *faultyWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestCombinedWriter_Write(t *testing.T) {
	sb1 := &strings.Builder{}
	sb1.WriteString("already-here|")
	sb2 := &strings.Builder{}

	cw := NewCombinedWriter(sb1, sb2)
	require.Len(t, cw.Writers, 2)

	n, err := cw.Write([]byte("first"))
	require.NoError(t, err)
	assert.Equal(t, len("first"), n)
	_, err = cw.Write([]byte("|second"))
	require.NoError(t, err)

	assert.Equal(t, "already-here|first|second", sb1.String())
	assert.Equal(t, "first|second", sb2.String())
}

func TestCombinedWriter_Write_WithError(t *testing.T) {
	sb := &strings.Builder{}
	cw := NewCombinedWriter(&faultyWriter{}, sb)

	n, err := cw.Write([]byte("a message"))
	require.Error(t, err)
	assert.Equal(t, len("a message"), n)
	assert.Equal(t, "a message", sb.String())

	cw = NewCombinedWriter(&faultyWriter{}, &faultyWriter{})
	n, err = cw.Write([]byte("lost"))
	assert.Zero(t, n)
	assert.Len(t, multierr.Errors(err), 2)
}
