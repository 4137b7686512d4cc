package testhelpers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeAPIAnswersCORSPreflight(t *testing.T) {
	f := NewFakeAPI(t)

	req, err := http.NewRequest(http.MethodOptions, f.URL()+"/rooms", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), http.MethodPost)
	assert.Zero(t, f.Hits(http.MethodOptions, "/rooms"), "preflights never reach the API routes")
}

func TestFakeAPIAllowsCrossOriginReads(t *testing.T) {
	f := NewFakeAPI(t)

	req, err := http.NewRequest(http.MethodGet, f.URL()+"/rooms", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, 1, f.Hits(http.MethodGet, "/rooms"))
}
