package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable that may point at a config file.
const EnvPath = "CLICKCHESS_CONFIG"

type Config struct {
	Listen       string          `yaml:"listen"`
	AllowOrigins []string        `yaml:"allowOrigins"`
	WebSocket    WebSocketConfig `yaml:"websocket"`
}

type WebSocketConfig struct {
	ReadBufferSize  int `yaml:"readBufferSize"`
	WriteBufferSize int `yaml:"writeBufferSize"`
}

func Default() Config {
	return Config{
		Listen:       ":3000",
		AllowOrigins: []string{"http://localhost:5173"},
		WebSocket: WebSocketConfig{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Load reads the YAML file at filename over the defaults. An empty filename
// falls back to $CLICKCHESS_CONFIG; a missing file yields the defaults.
func Load(filename string) (Config, error) {
	cfg := Default()
	if filename == "" {
		filename = os.Getenv(EnvPath)
	}
	if filename == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("'%s': %w", filename, err)
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("'%s': %w", filename, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("'%s': %w", filename, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Listen == "" {
		return errors.New("listen address is empty")
	}
	if c.WebSocket.ReadBufferSize <= 0 || c.WebSocket.WriteBufferSize <= 0 {
		return errors.New("websocket buffer sizes must be positive")
	}
	return nil
}
