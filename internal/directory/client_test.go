package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crosstrain/exchange/internal/identity"
)

func TestClient_FetchRoster(t *testing.T) {
	expected := rosterResponse{
		Staff: []identity.StaffEntry{
			{ID: "hunter", Name: "Hunter", Department: "Sales"},
			{ID: "kameelah", Name: "Kameelah", Department: "Compliance & Safety"},
		},
		Count: 2,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/staff", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expected)
	}))
	defer server.Close()

	client := NewClient(server.URL, logrus.New())

	entries, err := client.FetchRoster(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "hunter", entries[0].ID)
	assert.Equal(t, "Compliance & Safety", entries[1].Department)
}

func TestClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("directory down"))
	}))
	defer server.Close()

	client := NewClient(server.URL, logrus.New())

	_, err := client.FetchRoster(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_FetchRosterWithRetry(t *testing.T) {
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(rosterResponse{
			Staff: []identity.StaffEntry{{ID: "hunter", Name: "Hunter", Department: "Sales"}},
			Count: 1,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, logrus.New())

	entries, err := client.FetchRosterWithRetry(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(2))
}

func TestClient_RetryHonorsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, logrus.New())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchRosterWithRetry(ctx)
	require.Error(t, err)
}
