package orgdir

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// langNameKey is the reserved key holding a language's display name.
	langNameKey   = "_lang_name_"
	localeFileExt = ".yaml"
)

// LocaleStore loads flat key/value string tables, one YAML file per language,
// and resolves keys with fallback to the key itself. A missing or malformed
// locale file is never fatal; it just means fewer translations.
type LocaleStore struct {
	dir         string
	defaultLang string
	current     string
	table       map[string]string
	available   map[string]string
}

// NewLocaleStore scans dir for locale files and activates the system
// language when available, the default language otherwise.
func NewLocaleStore(dir, defaultLang string) *LocaleStore {
	s := &LocaleStore{
		dir:         dir,
		defaultLang: defaultLang,
		table:       make(map[string]string),
	}
	s.available = s.scanAvailable()

	lang := SystemLanguage()
	if _, ok := s.available[lang]; !ok {
		lang = defaultLang
	}
	s.SetLanguage(lang)
	return s
}

func (s *LocaleStore) scanAvailable() map[string]string {
	langs := make(map[string]string)
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		slog.Warn("locales directory not readable", "dir", s.dir, "error", err)
		langs[s.defaultLang] = "English"
		return langs
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, localeFileExt) {
			continue
		}
		code := strings.TrimSuffix(name, localeFileExt)
		table, err := loadLocaleFile(filepath.Join(s.dir, name))
		if err != nil {
			slog.Warn("could not load language file", "file", name, "error", err)
			continue
		}
		display := table[langNameKey]
		if display == "" {
			display = code
		}
		langs[code] = display
	}

	if len(langs) == 0 {
		langs[s.defaultLang] = "English"
	}
	return langs
}

func loadLocaleFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	table := make(map[string]string)
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, err
	}
	return table, nil
}

// SetLanguage activates code, falling back to the default language and then
// to an empty table when loading fails.
func (s *LocaleStore) SetLanguage(code string) {
	if _, ok := s.available[code]; !ok {
		slog.Warn("language not available, using default", "lang", code, "default", s.defaultLang)
		code = s.defaultLang
	}

	table, err := loadLocaleFile(filepath.Join(s.dir, code+localeFileExt))
	if err != nil && code != s.defaultLang {
		slog.Warn("could not load language, falling back to default", "lang", code, "error", err)
		code = s.defaultLang
		table, err = loadLocaleFile(filepath.Join(s.dir, code+localeFileExt))
	}
	if err != nil {
		table = make(map[string]string)
	}

	s.current = code
	s.table = table
}

// Get returns the translated string for key with "{name}" placeholders
// substituted from params. An unknown key returns the key itself; a missing
// param leaves its placeholder in place.
func (s *LocaleStore) Get(key string, params map[string]string) string {
	val, ok := s.table[key]
	if !ok {
		return key
	}
	for name, value := range params {
		val = strings.ReplaceAll(val, "{"+name+"}", value)
	}
	return val
}

func (s *LocaleStore) Current() string { return s.current }

// Available returns language codes mapped to their display names.
func (s *LocaleStore) Available() map[string]string { return s.available }

// AvailableCodes returns the sorted language codes.
func (s *LocaleStore) AvailableCodes() []string {
	codes := make([]string, 0, len(s.available))
	for code := range s.available {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// SystemLanguage detects the two-letter language code from the environment,
// e.g. "en_US.UTF-8" yields "en". Empty when undetectable.
func SystemLanguage() string {
	for _, env := range []string{"LC_ALL", "LANG"} {
		value := os.Getenv(env)
		if value == "" {
			continue
		}
		code := strings.SplitN(value, ".", 2)[0]
		code = strings.SplitN(code, "_", 2)[0]
		if code != "" && code != "C" && code != "POSIX" {
			return strings.ToLower(code)
		}
	}
	return ""
}
