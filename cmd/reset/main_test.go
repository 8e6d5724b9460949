package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/QuestAcademy_Go/internal/config"
)

func TestCheckAllowed(t *testing.T) {
	tests := []struct {
		name      string
		env       string
		confirmed bool
		wantErr   string
	}{
		{"confirmed development", "development", true, ""},
		{"unconfirmed", "development", false, "-yes"},
		{"production even when confirmed", config.EnvProduction, true, "refusing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Environment: tt.env, DBName: "questacademy", DBHost: "localhost"}
			err := checkAllowed(cfg, tt.confirmed)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
