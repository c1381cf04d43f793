package model

// ProviderConfig represents provider-specific configuration
type ProviderConfig struct {
	BaseURL      string
	Token        string
	Organization string
}
