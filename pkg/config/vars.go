package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "gnobs"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gnobs by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// DataDir returns the directory path for embedded database files.
// Returns ~/.local/share/gnobs/data by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "data")
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gnobs/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/gnobs/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// DatabasePath returns the file of an embedded database. The configured
// path wins; otherwise the file is named after the dialect and lives in
// DataDir.
func (c *Config) DatabasePath() string {
	if c.Database.Path != "" {
		return c.Database.Path
	}
	return filepath.Join(DataDir(c.HomeDir), AppName+"."+c.Database.Dialect)
}
