package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apperrors "github.com/thomas-vilte/relx/internal/errors"
)

type (
	Config struct {
		APIURL                 string          `yaml:"api_url"`
		Debug                  bool            `yaml:"debug"`
		Language               string          `yaml:"language"`
		DefaultProject         string          `yaml:"default_project"`
		DefaultProduct         string          `yaml:"default_product"`
		DefaultProductComposer string          `yaml:"default_productcomposer"`
		Artifacts              ArtifactsConfig `yaml:"artifacts"`

		PathFile string `yaml:"-"`
	}

	ArtifactsConfig struct {
		InvalidStart      []string   `yaml:"invalid_start"`
		InvalidExtensions []string   `yaml:"invalid_extensions"`
		RepoInfo          []RepoInfo `yaml:"repo_info"`
	}

	// RepoInfo names a repository and the package-name pattern that scopes
	// which packages are inspected when listing its artifacts.
	RepoInfo struct {
		Name    string `yaml:"name"`
		Pattern string `yaml:"pattern"`
	}
)

const (
	defaultLang       = "en"
	configFileName    = "config.yaml"
	configDirName     = "relx"
	confDirEnv        = "RELX_CONF_DIR"
	xdgConfigHomeEnv  = "XDG_CONFIG_HOME"
	defaultConfigMode = 0644
)

// ConfigPath resolves the configuration file location. RELX_CONF_DIR wins,
// then XDG_CONFIG_HOME, then ~/.config. A .env file in the working directory
// is loaded first so either variable can come from it.
func ConfigPath() (string, error) {
	_ = godotenv.Load()

	if dir := os.Getenv(confDirEnv); dir != "" {
		return filepath.Join(expandHome(dir), configFileName), nil
	}

	xdg := os.Getenv(xdgConfigHomeEnv)
	if xdg == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not resolve home directory: %w", err)
		}
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, configDirName, configFileName), nil
}

// LoadConfig reads the YAML configuration, creating a default file when none
// exists yet. The loaded configuration is validated before it is returned.
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefaultConfig(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading configuration file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, apperrors.ErrConfigInvalid.WithError(err).WithContext("path", path)
	}
	config.PathFile = path

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createDefaultConfig(path string) (*Config, error) {
	config := &Config{
		Language: defaultLang,
		PathFile: path,
	}

	if err := SaveConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig writes the configuration back to its file, validating it first.
func SaveConfig(config *Config) error {
	if err := validateConfig(config); err != nil {
		return err
	}

	if config.PathFile == "" {
		return apperrors.ErrConfigInvalid.WithError(fmt.Errorf("configuration file path is not set"))
	}

	dir := filepath.Dir(config.PathFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating configuration directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error encoding configuration: %w", err)
	}

	if err := os.WriteFile(config.PathFile, data, defaultConfigMode); err != nil {
		return fmt.Errorf("error writing configuration file: %w", err)
	}

	return nil
}

func validateConfig(config *Config) error {
	if config.Language == "" {
		config.Language = defaultLang
	}

	for _, repo := range config.Artifacts.RepoInfo {
		if repo.Name == "" {
			return apperrors.ErrConfigInvalid.
				WithError(fmt.Errorf("artifacts.repo_info entry without a name"))
		}
		if _, err := regexp.Compile(repo.Pattern); err != nil {
			return apperrors.ErrConfigInvalid.
				WithError(fmt.Errorf("artifacts.repo_info[%s].pattern: %w", repo.Name, err))
		}
	}

	return nil
}

func expandHome(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
