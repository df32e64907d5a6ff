package docio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeClipboard(t *testing.T, contents string, err error) *string {
	t.Helper()

	oldRead, oldWrite := readClipboard, writeClipboard
	t.Cleanup(func() {
		readClipboard, writeClipboard = oldRead, oldWrite
	})

	written := new(string)
	readClipboard = func() (string, error) { return contents, err }
	writeClipboard = func(s string) error {
		if err != nil {
			return err
		}
		*written = s
		return nil
	}
	return written
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("# A\ntype=t\nlinks=[]\n"), 0o644))

	text, err := FileSource{Path: path}.Load()
	require.NoError(t, err)
	assert.Equal(t, "# A\ntype=t\nlinks=[]\n", text)

	_, err = FileSource{Path: filepath.Join(dir, "missing.md")}.Load()
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.ErrorIs(t, err, os.ErrNotExist)

	empty := filepath.Join(dir, "empty.md")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = FileSource{Path: empty}.Load()
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestClipboardSource(t *testing.T) {
	fakeClipboard(t, "# A", nil)
	text, err := ClipboardSource{}.Load()
	require.NoError(t, err)
	assert.Equal(t, "# A", text)

	fakeClipboard(t, "", nil)
	_, err = ClipboardSource{}.Load()
	assert.ErrorIs(t, err, ErrNoContent)

	boom := errors.New("no clipboard utility")
	fakeClipboard(t, "", boom)
	_, err = ClipboardSource{}.Load()
	var sourceErr *SourceUnavailableError
	require.ErrorAs(t, err, &sourceErr)
	assert.Equal(t, "clipboard", sourceErr.Target)
	assert.ErrorIs(t, err, boom)
}

func TestDestinations(t *testing.T) {
	markup := "<section id=\"id1\">\n\n</section>\n"

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.html")
		require.NoError(t, FileDestination{Path: path}.Emit(markup))
		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, markup, string(got))
	})

	t.Run("file in missing directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "out.html")
		err := FileDestination{Path: path}.Emit(markup)
		assert.ErrorIs(t, err, ErrDestinationUnavailable)
	})

	t.Run("writer", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriterDestination{W: &buf, Name: "stdout"}.Emit(markup))
		assert.Equal(t, markup, buf.String())
	})

	t.Run("clipboard", func(t *testing.T) {
		written := fakeClipboard(t, "", nil)
		require.NoError(t, ClipboardDestination{}.Emit(markup))
		assert.Equal(t, markup, *written)
	})

	t.Run("clipboard failure", func(t *testing.T) {
		fakeClipboard(t, "", errors.New("no clipboard utility"))
		err := ClipboardDestination{}.Emit(markup)
		assert.ErrorIs(t, err, ErrDestinationUnavailable)
	})
}
