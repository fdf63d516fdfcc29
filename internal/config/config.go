package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Mavwarf/moonicon/internal/export"
	"github.com/Mavwarf/moonicon/internal/paths"
)

// Log backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// DefaultRoot is the project root used when none is configured.
const DefaultRoot = "."

// WebhookConfig posts a run summary to an HTTP endpoint. Header values may
// reference environment variables ($VAR or ${VAR}).
type WebhookConfig struct {
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
}

// MQTTConfig publishes a run summary to a broker topic.
type MQTTConfig struct {
	Broker   string `json:"broker"`
	Topic    string `json:"topic"`
	ClientID string `json:"client_id,omitempty"`
	QoS      int    `json:"qos,omitempty"`
	Retain   bool   `json:"retain,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// ChatConfig posts a one-line run message to a Slack or Discord incoming
// webhook.
type ChatConfig struct {
	WebhookURL string `json:"webhook_url"`
}

// TelegramConfig sends a run message through the Bot API. The token may
// reference an environment variable.
type TelegramConfig struct {
	Token  string `json:"token"`
	ChatID string `json:"chat_id"`
}

// Publish holds the optional post-run notification targets.
type Publish struct {
	Webhook  *WebhookConfig  `json:"webhook,omitempty"`
	MQTT     *MQTTConfig     `json:"mqtt,omitempty"`
	Slack    *ChatConfig     `json:"slack,omitempty"`
	Discord  *ChatConfig     `json:"discord,omitempty"`
	Telegram *TelegramConfig `json:"telegram,omitempty"`
}

// Options holds the settings parsed from the "config" key.
type Options struct {
	Root       string   `json:"root,omitempty"`
	Sets       []string `json:"sets,omitempty"`
	Log        bool     `json:"log"`
	LogBackend string   `json:"log_backend,omitempty"`
	Publish    Publish  `json:"publish,omitempty"`
}

// Config is the top-level configuration file.
type Config struct {
	Options Options `json:"config"`

	// Path is the file the config was read from, empty for defaults.
	Path string `json:"-"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	var c Config
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.Options.Root = DefaultRoot
	c.Options.Log = true
	c.Options.LogBackend = BackendSQLite
}

// UnmarshalJSON sets defaults then decodes the JSON structure.
// Go's json.Unmarshal merges into existing struct fields, so only
// values present in JSON override the defaults.
func (c *Config) UnmarshalJSON(data []byte) error {
	c.setDefaults()
	type Alias Config
	return json.Unmarshal(data, (*Alias)(c))
}

// Validate reports the first problem in the configuration.
func (c Config) Validate() error {
	o := c.Options
	for _, s := range o.Sets {
		if !export.IsSet(s) {
			return fmt.Errorf("config: unknown set %q", s)
		}
	}
	switch o.LogBackend {
	case "", BackendSQLite, BackendFile:
	default:
		return fmt.Errorf("config: unknown log_backend %q (want %s or %s)", o.LogBackend, BackendSQLite, BackendFile)
	}
	if w := o.Publish.Webhook; w != nil && w.URL == "" {
		return errors.New("config: publish.webhook requires url")
	}
	if m := o.Publish.MQTT; m != nil {
		if m.Broker == "" || m.Topic == "" {
			return errors.New("config: publish.mqtt requires broker and topic")
		}
		if m.QoS < 0 || m.QoS > 2 {
			return fmt.Errorf("config: publish.mqtt qos %d out of range 0-2", m.QoS)
		}
	}
	if c := o.Publish.Slack; c != nil && c.WebhookURL == "" {
		return errors.New("config: publish.slack requires webhook_url")
	}
	if c := o.Publish.Discord; c != nil && c.WebhookURL == "" {
		return errors.New("config: publish.discord requires webhook_url")
	}
	if tg := o.Publish.Telegram; tg != nil && (tg.Token == "" || tg.ChatID == "") {
		return errors.New("config: publish.telegram requires token and chat_id")
	}
	return nil
}

// Load reads and parses a config file. It tries, in order:
//  1. explicitPath (if non-empty; a missing file is an error)
//  2. moonicon-config.json next to the running binary
//  3. moonicon-config.json in the user data directory
//
// When neither 2 nor 3 exists, Load returns Default().
func Load(explicitPath string) (Config, error) {
	if explicitPath != "" {
		return readConfig(explicitPath)
	}
	if p := FindPath(); p != "" {
		return readConfig(p)
	}
	return Default(), nil
}

// FindPath returns the first existing implicit config location, or "".
func FindPath() string {
	var candidates []string
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), paths.ConfigFileName))
	}
	candidates = append(candidates, filepath.Join(paths.DataDir(), paths.ConfigFileName))

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config file %s not found", path)
		}
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}
