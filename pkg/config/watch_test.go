package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/pagewin/pkg/config"
)

func TestWatcher(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(header), 0o600))

	w, err := config.NewWatcher(path)
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, w.Close())
	})

	loaded := make(chan *config.Config, 8)
	go w.Run(t.Context(), func(c *config.Config) {
		loaded <- c
	})

	// Invalid configs are skipped.
	require.NoError(t, os.WriteFile(path, []byte(header+"menu:\n  itemsPerPage: 0\n"), 0o600))
	require.NoError(t, os.WriteFile(path, []byte(header+"menu:\n  itemsPerPage: 3\n"), 0o600))

	deadline := time.After(5 * time.Second)

	for {
		select {
		case c := <-loaded:
			if *c.Menu.ItemsPerPage == 3 {
				return
			}

		case <-deadline:
			t.Fatal("timed out waiting for config reload")
		}
	}
}
