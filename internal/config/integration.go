package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// IntegrationConfig tunes how the service talks to the platform admin API.
type IntegrationConfig struct {
	// APIVersion selects the platform admin API version segment.
	APIVersion string `mapstructure:"apiVersion"`
	// PageSize is the per-page item limit requested from collection
	// endpoints. The platform caps it at 250.
	PageSize int `mapstructure:"pageSize"`
	// OAuthScopes requested during install.
	OAuthScopes string `mapstructure:"oauthScopes"`
}

func DefaultIntegrationConfig() IntegrationConfig {
	return IntegrationConfig{
		APIVersion:  "2023-01",
		PageSize:    250,
		OAuthScopes: "read_customers,read_orders,read_shopify_payments_disputes",
	}
}

type IntegrationConfigHolder struct {
	current atomic.Value // holds IntegrationConfig
}

// NewIntegrationConfigHolder reads integration.yml (volume-mounted,
// system-wide, or cwd) and keeps it hot-reloadable. Missing file falls
// back to defaults.
func NewIntegrationConfigHolder() (*IntegrationConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("integration")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/shoplink/config")
	v.AddConfigPath("/etc/shoplink")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SHOPLINK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultIntegrationConfig()
	v.SetDefault("integration.apiVersion", defaults.APIVersion)
	v.SetDefault("integration.pageSize", defaults.PageSize)
	v.SetDefault("integration.oauthScopes", defaults.OAuthScopes)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg IntegrationConfig
	if err := v.UnmarshalKey("integration", &cfg); err != nil {
		return nil, err
	}
	if err := validateIntegrationConfig(cfg); err != nil {
		return nil, err
	}

	holder := &IntegrationConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated IntegrationConfig
		if err := v.UnmarshalKey("integration", &updated); err != nil {
			log.Printf("[integration-config] reload failed: %v", err)
			return
		}
		if err := validateIntegrationConfig(updated); err != nil {
			log.Printf("[integration-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[integration-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *IntegrationConfigHolder) Get() IntegrationConfig {
	return h.current.Load().(IntegrationConfig)
}

func validateIntegrationConfig(cfg IntegrationConfig) error {
	if strings.TrimSpace(cfg.APIVersion) == "" {
		return errors.New("integration.apiVersion cannot be empty")
	}
	if cfg.PageSize < 1 || cfg.PageSize > 250 {
		return errors.New("integration.pageSize must be between 1 and 250")
	}
	if strings.TrimSpace(cfg.OAuthScopes) == "" {
		return errors.New("integration.oauthScopes cannot be empty")
	}
	return nil
}
