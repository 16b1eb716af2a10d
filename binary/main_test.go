package binary

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// silent swallows step logs in tests that drive the helpers directly.
var silent = newlogger(io.Discard)

// tarball builds an in-memory .tar.gz holding files, keyed by archive path.
func tarball(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		content := files[name]
		require.NoError(
			t,
			tw.WriteHeader(
				&tar.Header{
					Name:     name,
					Mode:     0o755,
					Size:     int64(len(content)),
					Typeflag: tar.TypeReg,
				},
			),
		)
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}

	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())

	return buf.Bytes()
}

// archiveServer serves archive on every path and counts the requests it receives.
func archiveServer(t *testing.T, archive []byte) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				w.Header().Set("Content-Type", "application/gzip")
				w.Write(archive)
			},
		),
	)
	t.Cleanup(server.Close)

	return server, &hits
}
