package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"

	"go-smf/device"
	"go-smf/smf"
)

// DocumentConfig holds defaults for new and decoded documents
type DocumentConfig struct {
	PPQN         uint16 `json:"ppqn"`
	Format       uint16 `json:"format"`
	MaxTracks    int    `json:"maxTracks"` // 0 = unbounded
	TextEncoding string `json:"textEncoding,omitempty"`
}

// InputConfig defines a saved live input
type InputConfig struct {
	PortName    string `json:"portName"`
	AutoConnect bool   `json:"autoConnect"`
}

// LiveConfig tunes the live listener
type LiveConfig struct {
	SettleMillis      int           `json:"settleMillis"`
	PollMillis        int           `json:"pollMillis"`
	ReadTimeoutMillis int           `json:"readTimeoutMillis"`
	Inputs            []InputConfig `json:"inputs,omitempty"`
	ThruPort          string        `json:"thruPort,omitempty"`
}

// DebugConfig controls the debug log
type DebugConfig struct {
	Enabled bool   `json:"enabled,omitempty"`
	Path    string `json:"path,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Document DocumentConfig `json:"document"`
	Live     LiveConfig     `json:"live"`
	Debug    DebugConfig    `json:"debug,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Document: DocumentConfig{
			PPQN:         smf.DefaultPPQN,
			Format:       1,
			MaxTracks:    smf.DefaultMaxTracks,
			TextEncoding: "utf-8",
		},
		Live: LiveConfig{
			SettleMillis:      100,
			PollMillis:        5,
			ReadTimeoutMillis: 250,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-smf"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. Fields missing from the file keep
// their defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if _, err := TextEncoding(cfg.Document.TextEncoding); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

func (c *Config) SaveTo(path string) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// TextEncoding maps a charset name to the encoding used for text meta
// events. "" and "utf-8" return nil, meaning payloads are taken as UTF-8.
func TextEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.ReplaceAll(name, "_", "-")) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "shift-jis", "sjis":
		return japanese.ShiftJIS, nil
	case "latin1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	}
	return nil, fmt.Errorf("unknown text encoding %q", name)
}

// DocumentOptions turns the document section into smf options.
func (c *Config) DocumentOptions() ([]smf.Option, error) {
	enc, err := TextEncoding(c.Document.TextEncoding)
	if err != nil {
		return nil, err
	}
	opts := []smf.Option{smf.WithMaxTracks(c.Document.MaxTracks)}
	if enc != nil {
		opts = append(opts, smf.WithTextEncoding(enc))
	}
	return opts, nil
}

// NewDocument returns an empty document with the configured defaults.
func (c *Config) NewDocument() (*smf.Document, error) {
	opts, err := c.DocumentOptions()
	if err != nil {
		return nil, err
	}
	d := smf.New(opts...)
	if c.Document.PPQN > 0 {
		d.SetPPQN(c.Document.PPQN)
	}
	d.SetFormat(c.Document.Format)
	return d, nil
}

func millis(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// ListenerOptions turns the live section into listener options.
func (c *Config) ListenerOptions() []device.ListenerOption {
	return []device.ListenerOption{
		device.WithSettle(millis(c.Live.SettleMillis)),
		device.WithReadTimeout(millis(c.Live.ReadTimeoutMillis)),
	}
}

// ManagerOptions configures a device manager for the saved inputs.
func (c *Config) ManagerOptions() []device.ManagerOption {
	poll := millis(c.Live.PollMillis)
	if poll <= 0 {
		poll = 5 * time.Millisecond
	}
	return []device.ManagerOption{
		device.WithPorts(c.AutoConnectInputs()...),
		device.WithQueuePoll(poll),
		device.WithListenerOptions(c.ListenerOptions()...),
	}
}

// AutoConnectInputs returns the port names of inputs with autoConnect enabled
func (c *Config) AutoConnectInputs() []string {
	var result []string
	for _, in := range c.Live.Inputs {
		if in.AutoConnect {
			result = append(result, in.PortName)
		}
	}
	return result
}

// AddInput adds or updates an input config
func (c *Config) AddInput(in InputConfig) {
	for i := range c.Live.Inputs {
		if c.Live.Inputs[i].PortName == in.PortName {
			c.Live.Inputs[i] = in
			return
		}
	}
	c.Live.Inputs = append(c.Live.Inputs, in)
}
