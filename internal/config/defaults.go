package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"store": map[string]interface{}{
			"path": "~/.mcp-reminders/reminders.db",
		},
		"log": map[string]interface{}{
			"level": "info",
		},
	}
}

// NewDefaultProvider returns a koanf provider for the built-in defaults.
func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}
