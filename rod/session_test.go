//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/profilescan"
	"github.com/fwojciec/profilescan/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(opts ...rod.SessionOption) *rod.SessionManager {
	opts = append([]rod.SessionOption{
		rod.WithSettleDelay(0),
		rod.WithIdleQuiet(100 * time.Millisecond),
		rod.WithNavigationTimeout(15 * time.Second),
	}, opts...)
	return rod.NewSessionManager(opts...)
}

func serveHTML(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSession_Load_ReturnsRenderedHTML(t *testing.T) {
	t.Parallel()

	srv := serveHTML(t, http.StatusOK, `<!DOCTYPE html>
<html>
<head><title>Test Page</title></head>
<body>
<div id="content">Loading...</div>
<script>
document.getElementById('content').textContent = 'JavaScript Rendered';
</script>
</body>
</html>`)

	session, err := newTestManager().Acquire(context.Background())
	require.NoError(t, err)
	defer session.Close()

	html, err := session.Load(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, "JavaScript Rendered")
	assert.NotContains(t, html, "Loading...")
}

func TestSession_Load_WaitsForLateRequests(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/data", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title":"Professional Logo Design"}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html><body><h1 id="title"></h1>
<script>
Promise.all([fetch('/data'), fetch('/data'), fetch('/data')])
  .then(rs => rs[0].json())
  .then(d => { document.getElementById('title').textContent = d.title; });
</script>
</body></html>`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	session, err := newTestManager().Acquire(context.Background())
	require.NoError(t, err)
	defer session.Close()

	html, err := session.Load(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, "Professional Logo Design")
}

func TestSession_Load_ErrorPageWithoutContent(t *testing.T) {
	t.Parallel()

	srv := serveHTML(t, http.StatusNotFound, ``)

	session, err := newTestManager().Acquire(context.Background())
	require.NoError(t, err)
	defer session.Close()

	_, err = session.Load(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Equal(t, profilescan.ENAVIGATION, profilescan.ErrorCode(err))
}

func TestSession_Load_ErrorPageWithContent(t *testing.T) {
	t.Parallel()

	srv := serveHTML(t, http.StatusNotFound, `<html><body><h1>Gig not found</h1></body></html>`)

	session, err := newTestManager().Acquire(context.Background())
	require.NoError(t, err)
	defer session.Close()

	html, err := session.Load(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, "Gig not found")
}

func TestSession_Load_Timeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>delayed</body></html>`))
	}))
	defer srv.Close()

	session, err := newTestManager(rod.WithNavigationTimeout(200 * time.Millisecond)).Acquire(context.Background())
	require.NoError(t, err)
	defer session.Close()

	_, err = session.Load(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Equal(t, profilescan.ENAVIGATION, profilescan.ErrorCode(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSession_Load_SettleDelayOutsideNavigationTimeout(t *testing.T) {
	t.Parallel()

	srv := serveHTML(t, http.StatusOK, "<html><body><h1>Quick page</h1></body></html>")

	session, err := newTestManager(
		rod.WithNavigationTimeout(3*time.Second),
		rod.WithSettleDelay(4*time.Second),
	).Acquire(context.Background())
	require.NoError(t, err)
	defer session.Close()

	html, err := session.Load(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, "Quick page")
}

func TestSession_Load_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := serveHTML(t, http.StatusOK, `<html><body>ok</body></html>`)

	session, err := newTestManager().Acquire(context.Background())
	require.NoError(t, err)
	defer session.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = session.Load(ctx, srv.URL)

	require.Error(t, err)
	assert.Equal(t, profilescan.ENAVIGATION, profilescan.ErrorCode(err))
	assert.ErrorIs(t, err, context.Canceled)

	// Close does not depend on the canceled context.
	assert.NoError(t, session.Close())
}

func TestSession_Close_Idempotent(t *testing.T) {
	t.Parallel()

	session, err := newTestManager().Acquire(context.Background())
	require.NoError(t, err)

	require.NoError(t, session.Close())
	require.NoError(t, session.Close())
}

func TestSession_Load_AfterClose_ReturnsError(t *testing.T) {
	t.Parallel()

	session, err := newTestManager().Acquire(context.Background())
	require.NoError(t, err)
	require.NoError(t, session.Close())

	_, err = session.Load(context.Background(), "http://example.com")

	require.Error(t, err)
	assert.Equal(t, profilescan.ESESSION, profilescan.ErrorCode(err))
	assert.Contains(t, profilescan.ErrorMessage(err), "closed")
}

func TestSessionManager_Acquire_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	session, err := newTestManager().Acquire(ctx)

	require.Error(t, err)
	assert.Nil(t, session)
	assert.Equal(t, profilescan.ESESSION, profilescan.ErrorCode(err))
}

func TestSessionManager_Acquire_MissingBinary(t *testing.T) {
	t.Parallel()

	session, err := newTestManager(rod.WithBrowserBin("/nonexistent/chrome")).Acquire(context.Background())

	require.Error(t, err)
	assert.Nil(t, session)
	assert.Equal(t, profilescan.ESESSION, profilescan.ErrorCode(err))
}
