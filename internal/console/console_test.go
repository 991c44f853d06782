package console

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gcg-eyewear/storefront/internal/api"
	"github.com/gcg-eyewear/storefront/internal/session"
	"github.com/gcg-eyewear/storefront/pkg/httpclient"
	"github.com/gcg-eyewear/storefront/pkg/logger"
)

func newConsoleClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := session.Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	// No retries: failure tests should settle on the first response.
	hc := httpclient.New(httpclient.Config{Timeout: 5 * time.Second, MaxConnsPerHost: 10})
	return api.NewWithHTTPClient(srv.URL, store, hc, logger.NewWithWriter("console-test", "error", io.Discard))
}
