package registry

import "github.com/stakecast/stakecast/models"

// Config represents the configuration for the registry module
type Config struct {
	// AdminHandles are the account handles allowed to create, close, and
	// resolve markets.
	AdminHandles []string `env:"REGISTRY_ADMIN_HANDLES" env-separator:"," env-default:"admin"`
}

func (c *Config) Validate() error {
	if len(c.AdminHandles) == 0 {
		return models.ErrNotAuthorized
	}
	for _, h := range c.AdminHandles {
		if h == "" {
			return models.ErrInvalidAccount
		}
	}
	return nil
}

// Authorizer builds the authorization predicate from the configured handles.
func (c *Config) Authorizer() AuthorizeFunc {
	allowed := make(map[string]struct{}, len(c.AdminHandles))
	for _, h := range c.AdminHandles {
		allowed[h] = struct{}{}
	}
	return func(handle string) bool {
		_, ok := allowed[handle]
		return ok
	}
}

// GetDefaultConfig returns the default registry configuration
func GetDefaultConfig() *Config {
	return &Config{
		AdminHandles: []string{"admin"},
	}
}
