package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDataFileName   = "todo_data.json"

	appDirName = "taskman"
)

type Keymap struct {
	Quit           string `toml:"quit"`
	Add            string `toml:"add"`
	Edit           string `toml:"edit"`
	Up             string `toml:"up"`
	Down           string `toml:"down"`
	Toggle         string `toml:"toggle"`
	Delete         string `toml:"delete"`
	ClearCompleted string `toml:"clear_completed"`
	Search         string `toml:"search"`
	Filter         string `toml:"filter"`
	Export         string `toml:"export"`
	Confirm        string `toml:"confirm"`
	Cancel         string `toml:"cancel"`
	DueForward     string `toml:"due_forward"`
	DueBack        string `toml:"due_back"`
}

type Config struct {
	DataPath      string `toml:"data_path"`
	DefaultFilter string `toml:"default_filter"`
	DateInput     string `toml:"date_input"` // "text" or "stepper"
	Keys          Keymap `toml:"keys"`
}

// ResolveConfigPath returns the per-user config location, falling back to the
// working directory when the user config dir is unavailable.
func ResolveConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, appDirName, DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing a default config first if
// none exists.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DataPath == "" {
		cfg.DataPath = DefaultDataFileName
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DataPath:      DefaultDataFileName,
		DefaultFilter: "all",
		DateInput:     "text",
		Keys: Keymap{
			Quit:           "q",
			Add:            "a",
			Edit:           "e",
			Up:             "k",
			Down:           "j",
			Toggle:         " ",
			Delete:         "d",
			ClearCompleted: "c",
			Search:         "/",
			Filter:         "f",
			Export:         "x",
			Confirm:        "enter",
			Cancel:         "esc",
			DueForward:     "]",
			DueBack:        "[",
		},
	}
}
