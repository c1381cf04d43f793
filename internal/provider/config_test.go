package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigPrepareAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "missing token", cfg: Config{Type: GitHub}, wantErr: true},
		{name: "missing type", cfg: Config{Token: "t"}, wantErr: true},
		{name: "unknown type", cfg: Config{Type: "svn", Token: "t"}, wantErr: true},
		{name: "azure without organization", cfg: Config{Type: Azure, Token: "t"}, wantErr: true},
		{name: "azure with organization", cfg: Config{Type: Azure, Token: "t", Organization: "acme"}, wantErr: false},
		{name: "github", cfg: Config{Type: GitHub, Token: "t"}, wantErr: false},
		{name: "gitlab", cfg: Config{Type: GitLab, Token: "t"}, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.PrepareAndValidate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewProviderUnsupportedType(t *testing.T) {
	_, err := NewProvider(Config{Type: "svn", Token: "t"})
	assert.Error(t, err)
}
