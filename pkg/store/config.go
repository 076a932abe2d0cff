package store

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config supplies storage and platform simulation settings.
type Config interface {
	BasePath() string
	MinSlots() int
	DefaultAppID() string
}

// LoadConfig resolves configuration from a .jump file, JUMP_* environment
// variables, and defaults.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.jump.db")
	viper.SetDefault("slots", 10)
	viper.SetDefault("app", "jump.app.default")
	viper.SetConfigName(".jump") // .yaml is implicit
	viper.SetEnvPrefix("JUMP")
	viper.AutomaticEnv()

	if override := os.Getenv("JUMP_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config file: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand base path: %w", err)
	}

	return &fileConfig{
		Path:  path,
		Slots: viper.GetInt("slots"),
		App:   viper.GetString("app"),
	}, nil
}

type fileConfig struct {
	Path  string `json:"path"`
	Slots int    `json:"slots"`
	App   string `json:"app"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) MinSlots() int {
	if f.Slots <= 0 {
		return 10
	}
	return f.Slots
}

func (f *fileConfig) DefaultAppID() string {
	return f.App
}
