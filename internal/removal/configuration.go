package removal

import (
	"strings"

	"github.com/gwjr/focusctl/internal/omnifocus"
)

const (
	configurationItemTypeKeyConstant = "item_type"
)

// CommandConfiguration captures configuration values for the removal command.
type CommandConfiguration struct {
	ItemType string `mapstructure:"item_type"`
}

// DefaultCommandConfiguration provides baseline configuration values for item removal.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		ItemType: string(omnifocus.ItemTypeTask),
	}
}

// DefaultConfigurationValues exposes removal defaults keyed beneath the provided configuration root.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + configurationItemTypeKeyConstant: defaults.ItemType,
	}
}

// sanitize trims configuration values without applying implicit defaults.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.ItemType = strings.ToLower(strings.TrimSpace(configuration.ItemType))
	return sanitized
}
