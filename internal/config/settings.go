package config

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ContactsSettings describes where birthday vCards are read from.
// An empty Mode disables the birthday resolver source.
type ContactsSettings struct {
	Mode string `yaml:"mode"`
	Path string `yaml:"path"`
	URL  string `yaml:"url"`
	User string `yaml:"user"`
}

// Settings is the user-editable configuration of the calendar.
type Settings struct {
	WeekStart      int              `yaml:"week_start"`
	FillLeading    bool             `yaml:"fill_leading"`
	FillTrailing   bool             `yaml:"fill_trailing"`
	HighlightToday bool             `yaml:"highlight_today"`
	Language       string           `yaml:"language"`
	Resolvers      []string         `yaml:"resolvers"`
	Port           string           `yaml:"port"`
	RefreshMin     int              `yaml:"refresh_interval_min"`
	Contacts       ContactsSettings `yaml:"contacts"`
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() *Settings {
	return &Settings{
		WeekStart:      DefaultWeekStart,
		FillLeading:    DefaultFillLeading,
		FillTrailing:   DefaultFillTrailing,
		HighlightToday: DefaultHighlightToday,
		Language:       DefaultLanguage,
		Resolvers:      slices.Clone(DefaultResolvers),
		Port:           DefaultPort,
		RefreshMin:     DefaultRefreshMin,
	}
}

// LoadSettings reads a YAML settings file on top of the defaults.
// A missing file is not an error.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug(MsgSettingsNone,
				LogKeyComponent, CompSettings,
				LogKeyFile, path)
			return s, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrSettingsRead, err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSettingsParse, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	slog.Debug(MsgSettingsLoad,
		LogKeyComponent, CompSettings,
		LogKeyFile, path,
		LogKeyResolvers, s.Resolvers)
	return s, nil
}

// Validate fails fast on values that would prevent a grid from being built.
// Resolver names are checked by the annotate registry.
func (s *Settings) Validate() error {
	if s.WeekStart < 1 || s.WeekStart > DaysPerWeek {
		return Invalid("week_start", s.WeekStart, ErrWeekStartRange)
	}
	if !slices.Contains(SupportedLanguages, s.Language) {
		return Invalid("language", s.Language, ErrLanguage)
	}
	if err := ValidatePort(s.Port); err != nil {
		return err
	}
	if s.RefreshMin <= 0 {
		s.RefreshMin = DefaultRefreshMin
	}
	switch s.Contacts.Mode {
	case "":
	case SourceModeLocal:
		if s.Contacts.Path == "" {
			return Invalid("contacts.path", s.Contacts.Path, ErrLocalPathEmpty)
		}
	case SourceModeWeb:
		if s.Contacts.URL == "" {
			return Invalid("contacts.url", s.Contacts.URL, ErrWebURLEmpty)
		}
	default:
		return Invalid("contacts.mode", s.Contacts.Mode, ErrModeUnsupport)
	}
	return nil
}

// ValidatePort checks that port is a usable TCP port number.
func ValidatePort(port string) error {
	if port == "" {
		return Invalid("port", port, ErrPortRequired)
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return Invalid("port", port, ErrPortNumber)
	}
	if n < MinPort || n > MaxPort {
		return Invalid("port", port, ErrPortRange)
	}
	return nil
}
