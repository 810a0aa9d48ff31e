package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jask/msgdesk/internal/compose"
)

// Config holds application configuration.
type Config struct {
	Gateway  GatewayConfig
	Database DatabaseConfig
	Log      LogConfig
	Compose  ComposeConfig
	UI       UIConfig
}

// GatewayConfig points at the messaging backend.
type GatewayConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"` // 0 = transport default
}

// DatabaseConfig holds sqlite settings for the submission log.
type DatabaseConfig struct {
	Path string
}

// LogConfig holds zerolog settings.
type LogConfig struct {
	Level string
	Path  string
}

// ComposeConfig seeds a fresh draft.
type ComposeConfig struct {
	DefaultChannels    []string `mapstructure:"default_channels"`
	DefaultMessageType string   `mapstructure:"default_message_type"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DesktopNotifications bool `mapstructure:"desktop_notifications"`
}

// Load reads configuration from file and env. Env var overrides use prefix MSGDESK_.
func Load() (Config, error) {
	return LoadFrom(os.Getenv("MSGDESK_CONFIG"))
}

// LoadFrom is Load with an explicit config file. An empty path searches the
// default location.
func LoadFrom(cfgPath string) (Config, error) {
	return load(cfgPath, true)
}

// LoadOptional is LoadFrom but a missing explicit file yields defaults plus
// env, for commands that create the file.
func LoadOptional(cfgPath string) (Config, error) {
	return load(cfgPath, false)
}

func load(cfgPath string, mustExist bool) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(homeDir(), ".config", "msgdesk"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("MSGDESK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// a missing default file is fine, an explicit one only when !mustExist
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
		if !missing || (cfgPath != "" && mustExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Default returns the built-in configuration without touching disk or env.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return c
}

func setDefaults(v *viper.Viper) {
	home := homeDir()
	v.SetDefault("gateway.base_url", "http://localhost:8080")
	v.SetDefault("gateway.timeout", "0s")
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "msgdesk", "msgdesk.db"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "msgdesk", "msgdesk.log"))
	v.SetDefault("compose.default_channels", []string{compose.ChannelValueSMS})
	v.SetDefault("compose.default_message_type", string(compose.MessageIntroductory))
	v.SetDefault("ui.desktop_notifications", false)
}

// Validate rejects settings the app cannot start with.
func (c Config) Validate() error {
	base := strings.TrimSpace(c.Gateway.BaseURL)
	if base == "" {
		return fmt.Errorf("gateway.base_url is required")
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("gateway.base_url %q is not an absolute URL", base)
	}
	if c.Gateway.Timeout < 0 {
		return fmt.Errorf("gateway.timeout must not be negative")
	}
	if _, err := c.Compose.Channels(); err != nil {
		return err
	}
	if _, err := c.Compose.MessageType(); err != nil {
		return err
	}
	return nil
}

// Channels parses DefaultChannels into a set.
func (c ComposeConfig) Channels() (compose.ChannelSet, error) {
	var set compose.ChannelSet
	for _, raw := range c.DefaultChannels {
		switch ch := compose.Channel(strings.ToLower(strings.TrimSpace(raw))); ch {
		case compose.ChannelSMS, compose.ChannelWhatsApp:
			if !set.Has(ch) {
				set = compose.Toggle(set, ch)
			}
		default:
			return compose.ChannelSet{}, fmt.Errorf("compose.default_channels: unknown channel %q", raw)
		}
	}
	return set, nil
}

// MessageType parses DefaultMessageType, falling back to the introductory template.
func (c ComposeConfig) MessageType() (compose.MessageType, error) {
	if strings.TrimSpace(c.DefaultMessageType) == "" {
		return compose.MessageIntroductory, nil
	}
	mt, err := compose.ParseMessageType(c.DefaultMessageType)
	if err != nil {
		return "", fmt.Errorf("compose.default_message_type: %w", err)
	}
	return mt, nil
}

// NewDraft seeds a draft from the compose defaults. Invalid defaults are
// ignored here; Validate reports them at startup.
func (c ComposeConfig) NewDraft() compose.Draft {
	d := compose.NewDraft()
	if mt, err := c.MessageType(); err == nil {
		d.MessageType = mt
	}
	if set, err := c.Channels(); err == nil {
		d.Channels = set
	}
	return d
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	return SaveTo(DefaultPath(), cfg)
}

// DefaultPath is MSGDESK_CONFIG or ~/.config/msgdesk/config.toml.
func DefaultPath() string {
	if p := os.Getenv("MSGDESK_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(homeDir(), ".config", "msgdesk", "config.toml")
}

// SaveTo writes cfg as TOML to path.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("gateway.base_url", cfg.Gateway.BaseURL)
	v.Set("gateway.timeout", cfg.Gateway.Timeout.String())
	v.Set("database.path", cfg.Database.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.path", cfg.Log.Path)
	v.Set("compose.default_channels", cfg.Compose.DefaultChannels)
	v.Set("compose.default_message_type", cfg.Compose.DefaultMessageType)
	v.Set("ui.desktop_notifications", cfg.UI.DesktopNotifications)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func homeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	h, _ := os.UserHomeDir()
	return h
}
