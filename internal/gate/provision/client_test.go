package provision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClient_CreateUser(t *testing.T) {
	t.Run("sends token and payload", func(t *testing.T) {
		var gotToken string
		var gotBody map[string]string

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/Users/New", r.URL.Path)
			gotToken = r.Header.Get("X-Emby-Token")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "secret-token")
		require.NoError(t, c.CreateUser(context.Background(), "alice", "hunter2"))
		require.Equal(t, "secret-token", gotToken)
		require.Equal(t, "alice", gotBody["Name"])
		require.Equal(t, "hunter2", gotBody["Password"])
	})

	t.Run("400 means username taken", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "tok")
		err := c.CreateUser(context.Background(), "alice", "pw")
		require.ErrorIs(t, err, ErrUsernameExists)
	})

	t.Run("5xx means unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "tok")
		err := c.CreateUser(context.Background(), "alice", "pw")
		require.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("connection refused means unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		c := NewClient(srv.URL, "tok")
		err := c.CreateUser(context.Background(), "alice", "pw")
		require.ErrorIs(t, err, ErrUnavailable)
	})
}
