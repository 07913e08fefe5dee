// Package snapshot compares values against JSON files kept in testdata
package snapshot

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var update = flag.Bool("update-snapshots", false, "rewrite snapshot files instead of comparing")

var (
	mu    sync.Mutex
	calls = make(map[string]int)
)

// Match compares obj with testdata/<test name>-<call>.json
// A missing snapshot is written and the comparison passes.
func Match(t *testing.T, obj interface{}, msgAndArgs ...interface{}) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())

	mu.Lock()
	call := calls[name]
	calls[name] = call + 1
	mu.Unlock()

	filename := filepath.Join("testdata", fmt.Sprintf("%s-%d.json", name, call))

	got, err := json.MarshalIndent(obj, "", "  ")
	require.NoError(t, err)

	want, err := os.ReadFile(filename)
	if *update || errors.Is(err, fs.ErrNotExist) {
		write(t, filename, got)
		return
	}
	require.NoError(t, err)

	if !assert.JSONEq(t, string(want), string(got), msgAndArgs...) {
		t.Logf("snapshot %s, rerun with -update-snapshots to accept", filename)
	}
}

func write(t *testing.T, filename string, data []byte) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(filename), 0755))
	require.NoError(t, os.WriteFile(filename, append(data, '\n'), 0644))
	logrus.WithField("filename", filename).Info("wrote snapshot file")
}
