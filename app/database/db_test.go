package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stakecast/stakecast/models"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name: "complete credentials",
			config: Config{
				Host:     "localhost",
				Port:     "5432",
				User:     "stakecast",
				Password: "secret",
				Database: "stakecast",
			},
			wantErr: nil,
		},
		{
			name:    "missing everything",
			config:  Config{},
			wantErr: models.ErrDatabaseCredentialNotConfigured,
		},
		{
			name: "missing password",
			config: Config{
				Host:     "localhost",
				User:     "stakecast",
				Database: "stakecast",
			},
			wantErr: models.ErrDatabaseCredentialNotConfigured,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	db, err := New(&Config{})
	assert.Nil(t, db)
	assert.ErrorIs(t, err, models.ErrDatabaseCredentialNotConfigured)
}
