package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClient_POST(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/games", r.URL.Path)
		require.Equal(t, "a%20b", r.URL.RawQuery[len("q="):])
		require.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		require.Equal(t, "client", r.Header.Get("Client-ID"))

		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.Equal(t, "fields name;", string(b))

		_, err = w.Write([]byte(`[{"id": 1, "name": "Celeste"}]`))
		require.NoError(t, err)
	}))
	defer server.Close()

	resp, err := NewGenerator(server.URL).New("/games").
		Query(Parameter{"q": "a b"}).
		Header("Client-ID", "client").
		Body(Text("fields name;")).
		POST(context.Background(), OAuth2("Bearer", "token"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Code)

	array, ok := resp.Body.(Array)
	require.True(t, ok)
	require.Len(t, array, 1)

	name, err := JSON(array[0].(map[string]any)).GetString("name")
	require.NoError(t, err)
	require.Equal(t, "Celeste", name)
}

func TestClient_FallbackDomain(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"cover": {"url": "//img"}}`))
	}))
	defer server.Close()

	resp, err := NewGenerator("http://127.0.0.1:1", server.URL).New("/x").GET(context.Background())
	require.NoError(t, err)

	url, err := resp.Body.(JSON).GetString("cover.url")
	require.NoError(t, err)
	require.Equal(t, "//img", url)
}
