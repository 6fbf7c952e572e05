package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qlcc/internal/model"
	"qlcc/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupUpstream(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, time.Second, StaticToken("secret"), testLogger())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestResource_List(t *testing.T) {
	client := setupUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/hotlines", r.URL.Path)
		assert.Equal(t, "name=A&page=0&size=20", r.URL.RawQuery)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{
			"data": map[string]any{
				"data":         []map[string]any{{"id": 1, "name": "Bảo vệ A", "phone": "0901", "status": "active"}},
				"recordsTotal": 41,
			},
		})
	})
	res := NewResource[*model.Hotline](client, "hotlines")

	page, err := res.List(context.Background(), url.Values{"name": {"A"}, "page": {"0"}, "size": {"20"}})

	require.NoError(t, err)
	assert.Equal(t, 41, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(1), page.Items[0].ID)
	assert.Equal(t, "Bảo vệ A", page.Items[0].Name)
}

func TestResource_EmptyList(t *testing.T) {
	client := setupUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"data": nil, "recordsTotal": 0}})
	})

	page, err := NewResource[*model.Hotline](client, "/hotlines/").List(context.Background(), nil)

	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestResource_CreateAndUpdate(t *testing.T) {
	client := setupUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/news":
			body["id"] = 12
		case r.Method == http.MethodPut && r.URL.Path == "/news/12":
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": body})
	})
	res := NewResource[*model.News](client, "news")
	n := model.NewNews()
	n.Title = "Cắt nước"

	created, err := res.Create(context.Background(), n)
	require.NoError(t, err)
	assert.Equal(t, int64(12), created.ID)

	created.Title = "Cắt điện"
	updated, err := res.Update(context.Background(), 12, created)
	require.NoError(t, err)
	assert.Equal(t, "Cắt điện", updated.Title)
}

func TestResource_Delete(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     any
		wantErr  bool
		notFound bool
	}{
		{name: "deleted", status: http.StatusOK, body: map[string]any{"data": true}},
		{name: "not applied", status: http.StatusOK, body: map[string]any{"data": false}, wantErr: true},
		{name: "missing", status: http.StatusNotFound, body: map[string]any{"message": "hotline not found"}, wantErr: true, notFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := setupUpstream(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				assert.Equal(t, "/hotlines/5", r.URL.Path)
				writeJSON(w, tt.status, tt.body)
			})

			err := NewResource[*model.Hotline](client, "hotlines").Delete(context.Background(), 5)

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var f *Failure
			require.ErrorAs(t, err, &f)
			assert.Equal(t, tt.notFound, errors.Is(err, store.ErrNotFound))
		})
	}
}

func TestClient_FailureCarriesServerMessage(t *testing.T) {
	client := setupUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"message": "phone is invalid", "error": "VALIDATION"})
	})

	err := client.Do(context.Background(), Request{URL: "/hotlines", Method: http.MethodPost, Body: map[string]string{}}, nil)

	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, http.StatusUnprocessableEntity, f.Status)
	assert.Equal(t, "phone is invalid", f.Message)
	assert.EqualError(t, f.Err, "VALIDATION")
	assert.Contains(t, err.Error(), "422")
}

func TestClient_NonJSONError(t *testing.T) {
	client := setupUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	err := client.Do(context.Background(), Request{URL: "/x"}, nil)

	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, http.StatusBadGateway, f.Status)
	assert.Equal(t, "Bad Gateway", f.Message)
}

func TestClient_NoCredentials(t *testing.T) {
	client := setupUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{"data": "ok"})
	})

	var out string
	require.NoError(t, client.Do(context.Background(), Request{URL: "/ping"}, &out))
	assert.Equal(t, "ok", out)
}

func TestClient_TokenError(t *testing.T) {
	client := New("http://127.0.0.1:1", time.Second, func(context.Context) (string, error) {
		return "", errors.New("expired")
	}, testLogger())

	err := client.Do(context.Background(), Request{URL: "/x", UseCredentials: true}, nil)

	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, 0, f.Status)
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()
	client := New(server.URL, time.Second, nil, testLogger())

	err := client.Do(context.Background(), Request{URL: "/x"}, nil)

	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, 0, f.Status)
	assert.Contains(t, err.Error(), "remote request failed")
}
