package orgdir

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings holds the persisted user configuration.
type Settings struct {
	Separator  string    `yaml:"separator"`
	Language   string    `yaml:"language"`
	LocalesDir string    `yaml:"locales_dir"`
	Logging    LogConfig `yaml:"logging"`
}

// DefaultSettings returns configuration with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Separator: "-",
		Language:  "en",
		Logging:   DefaultLogConfig(),
	}
}

// settingsPaths returns the list of paths searched for a settings file.
func settingsPaths() []string {
	paths := []string{".orgdir.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "orgdir", "config.yaml"),
			filepath.Join(home, ".orgdir.yaml"),
		)
	}
	return paths
}

// LoadSettings loads the settings file or returns defaults.
// Priority: env ORGDIR_CONFIG > search paths > defaults.
func LoadSettings() (*Settings, error) {
	s := DefaultSettings()

	if envPath := os.Getenv("ORGDIR_CONFIG"); envPath != "" {
		if err := s.loadFromFile(envPath); err != nil {
			return nil, err
		}
		s.applyEnvOverrides()
		return s, nil
	}

	for _, path := range settingsPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := s.loadFromFile(path); err != nil {
				return nil, err
			}
			break
		}
	}

	s.applyEnvOverrides()
	return s, nil
}

func (s *Settings) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, s)
}

func (s *Settings) applyEnvOverrides() {
	if lang := os.Getenv("ORGDIR_LANG"); lang != "" {
		s.Language = lang
	}
	if sep := os.Getenv("ORGDIR_SEPARATOR"); sep != "" {
		s.Separator = sep
	}
}

// GetLocalesDir returns the configured locales directory, or the first
// existing candidate next to the working directory, the executable, or the
// user config dir.
func (s *Settings) GetLocalesDir() string {
	if s.LocalesDir != "" {
		return s.LocalesDir
	}

	candidates := []string{"locales"}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), "locales"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "orgdir", "locales"))
	}

	for _, dir := range candidates {
		if isDirectory(dir) {
			return dir
		}
	}
	return "locales"
}
