package pkg

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLog(t *testing.T) {
	defer log.SetOutput(os.Stderr)
	defer log.SetPrefix("")

	path := filepath.Join(t.TempDir(), "termtris.log")

	f, err := InitLog(path, "CLIENT: ")
	require.NoError(t, err)

	log.Print("hello")
	require.NoError(t, f.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "CLIENT: ")
	assert.Contains(t, string(b), "hello")

	f, err = InitLog("", "")
	require.NoError(t, err)
	log.Print("discarded")
	assert.NoError(t, f.Close())

	_, err = InitLog(filepath.Join(t.TempDir(), "missing", "termtris.log"), "")
	assert.Error(t, err)
}
