package arcapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRecentPlay(t *testing.T) {
	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":{"last_played_song":{"song_id":"fractureray","difficulty":2,"score":9982331,"shiny_pure_count":801}}}`))
	}))
	defer server.Close()

	client, err := New(&Config{BaseURL: server.URL, Token: "secret"})
	require.NoError(t, err)

	play, err := client.GetRecentPlay(context.Background(), "1234567")
	require.NoError(t, err)

	// Account codes are zero-padded to 9 digits
	assert.Equal(t, "/api/v0/user/001234567", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "fractureray", play.SongKey)
	assert.Equal(t, 9982331, play.Score)
	assert.Equal(t, 801, play.ShinyPures)
}

func TestGetRecentPlayMissingBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	client, err := New(&Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.GetRecentPlay(context.Background(), "123456789")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadResponse))
}

func TestGetRecentPlayServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := New(&Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.GetRecentPlay(context.Background(), "123456789")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadResponse))
}

func TestGetBestPlays(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v0/user/123456789/best", r.URL.Path)
		w.Write([]byte(`{"data":[{"song_id":"halcyon","difficulty":2,"score":9931204,"shiny_pure_count":700,"potential_value":1201}]}`))
	}))
	defer server.Close()

	client, err := New(&Config{BaseURL: server.URL})
	require.NoError(t, err)

	plays, err := client.GetBestPlays(context.Background(), "123456789")
	require.NoError(t, err)
	require.Len(t, plays, 1)
	assert.Equal(t, "halcyon", plays[0].SongKey)
	assert.Equal(t, 1201, plays[0].PotentialValue)
}
