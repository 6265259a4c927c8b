package encoding

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, input []byte) string {
	t.Helper()

	r, err := NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	out, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(out)
}

func TestNewUTF8Reader_StripsUTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Data;Descrição;Valor")...)

	assert.Equal(t, "Data;Descrição;Valor", decode(t, input))
}

func TestNewUTF8Reader_PassesValidUTF8Through(t *testing.T) {
	assert.Equal(t, "résumé €100", decode(t, []byte("résumé €100")))
}

func TestNewUTF8Reader_DecodesUTF16LE(t *testing.T) {
	// "ab" with a UTF-16 LE BOM.
	input := []byte{0xFF, 0xFE, 'a', 0x00, 'b', 0x00}

	assert.Equal(t, "ab", decode(t, input))
}

func TestNewUTF8Reader_FallsBackToWindows1252(t *testing.T) {
	// 0xE9 is é in Windows-1252 and invalid as standalone UTF-8.
	input := []byte("caf\xe9 payment")

	assert.Equal(t, "café payment", decode(t, input))
}

func TestNewUTF8Reader_EmptyInput(t *testing.T) {
	assert.Equal(t, "", decode(t, nil))
}
