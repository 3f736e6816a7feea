package relay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigNormalize(t *testing.T) {
	cfg := NewConfig(
		WithMountPath(" seeks/ "),
		WithBackendURL("http://backend.test/"),
		WithLandingPath("home"),
	)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "/seeks", cfg.MountPath)
	assert.Equal(t, "http://backend.test", cfg.BackendURL)
	assert.Equal(t, "/home", cfg.LandingPath)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    []ConfigOption
		wantErr bool
	}{
		{name: "defaults", opts: nil},
		{name: "direct connection", opts: []ConfigOption{WithProxyURL("")}},
		{name: "root mount", opts: []ConfigOption{WithMountPath("/")}, wantErr: true},
		{name: "relative backend", opts: []ConfigOption{WithBackendURL("s.s")}, wantErr: true},
		{name: "bad proxy", opts: []ConfigOption{WithProxyURL("::nope")}, wantErr: true},
		{name: "no landing", opts: []ConfigOption{WithLandingPath(" ")}, wantErr: true},
		{name: "negative timeout", opts: []ConfigOption{WithTimeout(-time.Second)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewConfig(tt.opts...).Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
