// Package iofs prepares the file system layout of gnobs.
package iofs

import (
	_ "embed"
	"os"

	"github.com/gnames/gnobs/pkg/config"
	"github.com/gnames/gnsys"
)

//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates config, data and log directories under homeDir.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.DataDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := gnsys.MakeDir(v); err != nil {
			return CreateDirError(v, err)
		}
	}
	return nil
}

// EnsureConfigFile writes the documented default config.yaml unless a
// config file already exists.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// ReadFile returns the content of a user supplied file, such as a column
// mapping.
func ReadFile(path string) ([]byte, error) {
	res, err := os.ReadFile(path)
	if err != nil {
		return nil, ReadFileError(path, err)
	}
	return res, nil
}
