package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/colliders/internal/scene"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(newRouter(scene.Default(), "example.org", log.New(io.Discard)))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestIndexPage(t *testing.T) {
	srv := newTestServer(t)
	resp := get(t, srv.URL+"/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "ssh -t example.org")
	assert.NotContains(t, string(body), "{{.SSHHost}}")
}

func TestSceneEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp := get(t, srv.URL+"/api/scene")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got sceneResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got.Shapes, 7)
	assert.Equal(t, "circle", got.Shapes[0].Kind)
	assert.Equal(t, bounds{Min: point{X: -50, Y: -50}, Max: point{X: 50, Y: 50}}, got.Shapes[0].Bounds)
	assert.Equal(t, 100.0, got.Settings.ProximityThreshold)
}

func TestProbeEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp := get(t, srv.URL+"/api/probe?x=100&y=0")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got probeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, point{X: 100, Y: 0}, got.Point)
	require.Len(t, got.Hits, 7)

	circle := got.Hits[0]
	assert.False(t, circle.Inside)
	assert.InDelta(t, 50, circle.Closest.X, 1e-9)
	assert.InDelta(t, 0, circle.Closest.Y, 1e-9)
	assert.InDelta(t, 50, circle.Distance, 1e-9)
}

func TestProbeEndpointRejectsBadInput(t *testing.T) {
	srv := newTestServer(t)
	for _, q := range []string{"", "?x=1", "?x=a&y=1", "?x=NaN&y=1", "?x=1&y=Inf"} {
		resp := get(t, srv.URL+"/api/probe"+q)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Post(srv.URL+"/api/scene", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestSceneETag(t *testing.T) {
	srv := newTestServer(t)
	resp := get(t, srv.URL+"/api/scene")
	etag := resp.Header.Get("ETag")
	require.NotEmpty(t, etag)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/scene", nil)
	require.NoError(t, err)
	req.Header.Set("If-None-Match", etag)
	cached, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer cached.Body.Close()
	assert.Equal(t, http.StatusNotModified, cached.StatusCode)
}

func TestProbeStream(t *testing.T) {
	srv := newTestServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/probe"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(probeRequest{X: -200, Y: 10}))
	var first probeResponse
	require.NoError(t, conn.ReadJSON(&first))
	require.Len(t, first.Hits, 7)
	assert.True(t, first.Hits[2].Inside, "oriented box contains its center")

	// Rotation persists on the connection's own shapes.
	require.NoError(t, conn.WriteJSON(probeRequest{X: -200, Y: 70, Rotate: 0.25}))
	var second probeResponse
	require.NoError(t, conn.ReadJSON(&second))
	assert.Equal(t, point{X: -200, Y: 70}, second.Point)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"x": 1e400}`)))
	var bad streamError
	require.NoError(t, conn.ReadJSON(&bad))
	assert.NotEmpty(t, bad.Error)
}

func TestProbeStreamRejectsOversizedMessage(t *testing.T) {
	srv := newTestServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/probe"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	padding := strings.Repeat(" ", 4*maxProbeMessage)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"x": 1,`+padding+`"y": 2}`)))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseMessageTooBig), "got %v", err)
}
