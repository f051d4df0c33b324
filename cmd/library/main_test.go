package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"biblioteca/pkg/config"
	"biblioteca/pkg/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		args       []string
		cmd        string
		migrateCmd string
		wantErr    bool
	}{
		{args: nil, cmd: "serve"},
		{args: []string{"serve"}, cmd: "serve"},
		{args: []string{"migrate"}, cmd: "migrate", migrateCmd: "up"},
		{args: []string{"migrate", "down"}, cmd: "migrate", migrateCmd: "down"},
		{args: []string{"migrate", "status"}, cmd: "migrate", migrateCmd: "status"},
		{args: []string{"migrate", "sideways"}, wantErr: true},
		{args: []string{"serve", "extra"}, wantErr: true},
		{args: []string{"bogus"}, wantErr: true},
	}

	for _, tt := range tests {
		cmd, migrateCmd, err := parseArgs(tt.args)
		if tt.wantErr {
			assert.Error(t, err, "%v", tt.args)
			continue
		}
		require.NoError(t, err, "%v", tt.args)
		assert.Equal(t, tt.cmd, cmd)
		assert.Equal(t, tt.migrateCmd, migrateCmd)
	}
}

func TestNewServer(t *testing.T) {
	cfg := &config.Config{
		HTTP:   config.HTTP{Host: "127.0.0.1", Port: 8060, GinMode: "test"},
		Search: config.Search{EmptyIsNotFound: false},
	}
	srv := newServer(cfg, testdb.New(t))

	assert.Equal(t, "127.0.0.1:8060", srv.Addr)

	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/manage/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "UP", health["status"])

	w = httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books/search/?author_name=Nobody", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}
