package iojson

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer

	require.NoError(t, WriteWith(&out, &errOut, map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestWriteWith_MarshalError(t *testing.T) {
	var out, errOut bytes.Buffer

	require.NoError(t, WriteWith(&out, &errOut, math.Inf(1)))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), `"json_error"`)
}

func TestWriteRaw(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteRaw(&out, []byte(`[{"id":"a"}]`)))
	assert.Equal(t, "[\n  {\n    \"id\": \"a\"\n  }\n]\n", out.String())

	out.Reset()
	require.NoError(t, WriteRaw(&out, []byte("not json\n")))
	assert.Equal(t, "not json\n", out.String())
}

func TestFileReader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`[1]`), 0o644))

	fr := NewFileReader()
	fr.fileFlagValue = path

	data, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(data))
}

func TestFileReader_MissingFile(t *testing.T) {
	fr := NewFileReader()
	fr.fileFlagValue = filepath.Join(t.TempDir(), "missing.json")

	_, err := fr.Read()
	assert.ErrorContains(t, err, "open file")
}

func TestFileReader_Stdin(t *testing.T) {
	fr := NewFileReader().WithStdin(strings.NewReader(`[]`))

	data, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestFileReader_TerminalStdin(t *testing.T) {
	fr := &FileReader{stdin: strings.NewReader(""), isTerminal: func() bool { return true }}

	_, err := fr.Read()
	assert.ErrorIs(t, err, ErrTerminalInput)
}

func TestFileReader_Flag(t *testing.T) {
	f := NewFileReader().Flag()
	assert.Equal(t, "file", f.Name)
	assert.Equal(t, []string{"f"}, f.Aliases)
}
