package config

import (
	"fmt"
	"os"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"
)

// OptionType is the expected type of an option value.
type OptionType string

const (
	TypeString   OptionType = "string"
	TypeBool     OptionType = "bool"
	TypeInt      OptionType = "int"
	TypeDuration OptionType = "duration"
)

// ConfigOption declares a single option.
type ConfigOption struct {
	// Key is the option name, as it appears in the file.
	Key         string
	Type        OptionType
	Default     string
	Description string
	// Choices, if set, restricts the value to one of the listed strings.
	Choices []string
	// EnvVar, if set, names an environment variable that takes precedence
	// over the file.
	EnvVar string
}

// ConfigSchema declares the known options. Options are global, but may be
// overridden in any command section.
type ConfigSchema struct {
	options []*ConfigOption
	byKey   map[string]*ConfigOption
}

// NewSchema returns an empty schema.
func NewSchema() *ConfigSchema {
	return &ConfigSchema{byKey: make(map[string]*ConfigOption)}
}

// Register adds opt, replacing any option with the same key.
func (s *ConfigSchema) Register(opt ConfigOption) {
	ref := &opt
	if i := slices.IndexFunc(s.options, func(o *ConfigOption) bool { return o.Key == opt.Key }); i >= 0 {
		s.options[i] = ref
	} else {
		s.options = append(s.options, ref)
	}
	s.byKey[opt.Key] = ref
}

// RegisterAll registers each of opts.
func (s *ConfigSchema) RegisterAll(opts []ConfigOption) {
	for _, opt := range opts {
		s.Register(opt)
	}
}

// Lookup returns the option for key, or nil.
func (s *ConfigSchema) Lookup(key string) *ConfigOption {
	return s.byKey[key]
}

// Options returns a copy of the registered options, in registration order.
func (s *ConfigSchema) Options() []ConfigOption {
	out := make([]ConfigOption, len(s.options))
	for i, o := range s.options {
		out[i] = *o
	}
	return out
}

// Resolve returns the effective value of key for command ("" for none),
// checking in order: the option's environment variable, the command section,
// the global value, then the default.
func (s *ConfigSchema) Resolve(c *Config, command, key string) string {
	opt := s.Lookup(key)
	if opt != nil && opt.EnvVar != "" {
		if v, ok := os.LookupEnv(opt.EnvVar); ok {
			return v
		}
	}
	if c != nil {
		if v, ok := c.GetCommandOption(command, key); ok {
			return v
		}
	}
	if opt != nil {
		return opt.Default
	}
	return ""
}

// ValidateConfig returns a sorted list of issues with c: unknown options,
// and values which don't match the declared type.
func ValidateConfig(c *Config, s *ConfigSchema) []string {
	var issues []string
	check := func(where, key, value string) {
		opt := s.Lookup(key)
		if opt == nil {
			issues = append(issues, fmt.Sprintf("unknown option %q%s (value: %q)", key, where, value))
			return
		}
		if err := opt.validate(value); err != nil {
			issues = append(issues, fmt.Sprintf("option %q%s: %v", key, where, err))
		}
	}
	for key, value := range c.Global {
		check("", key, value)
	}
	for section, opts := range c.Commands {
		for key, value := range opts {
			check(fmt.Sprintf(" in [%s]", section), key, value)
		}
	}
	sort.Strings(issues)
	return issues
}

// Validate checks value against the declared type and choices of key.
func (s *ConfigSchema) Validate(key, value string) error {
	opt := s.Lookup(key)
	if opt == nil {
		return fmt.Errorf("unknown option %q", key)
	}
	return opt.validate(value)
}

func (o *ConfigOption) validate(value string) error {
	switch o.Type {
	case TypeString, "":
	case TypeBool:
		if _, err := parseBool(value); err != nil {
			return fmt.Errorf("expected bool, got %q", value)
		}
	case TypeInt:
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("expected int, got %q", value)
		}
	case TypeDuration:
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("expected duration, got %q", value)
		}
	default:
		return fmt.Errorf("unknown option type %q", o.Type)
	}
	if len(o.Choices) != 0 && !slices.Contains(o.Choices, value) {
		return fmt.Errorf("expected one of %s, got %q", strings.Join(o.Choices, ", "), value)
	}
	return nil
}

// FormatHelp describes every option, one per line.
func (s *ConfigSchema) FormatHelp() string {
	var b strings.Builder
	b.WriteString("Options:\n")
	for _, o := range s.options {
		fmt.Fprintf(&b, "  %-20s %s", o.Key, o.Description)
		var parts []string
		if o.Type != "" && o.Type != TypeString {
			parts = append(parts, "type: "+string(o.Type))
		}
		if len(o.Choices) != 0 {
			parts = append(parts, "one of: "+strings.Join(o.Choices, "|"))
		}
		if o.Default != "" {
			parts = append(parts, "default: "+o.Default)
		}
		if o.EnvVar != "" {
			parts = append(parts, "env: "+o.EnvVar)
		}
		if len(parts) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(parts, ", "))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Option keys.
const (
	KeyLogLevel      = "log.level"
	KeyLogFile       = "log.file"
	KeyColor         = "color"
	KeyMaxTicks      = "run.max-ticks"
	KeyInterval      = "run.interval"
	KeyExprCacheSize = "expr.cache-size"
)

// DefaultSchema returns the schema of every option resumebt understands.
func DefaultSchema() *ConfigSchema {
	s := NewSchema()
	s.RegisterAll([]ConfigOption{
		{Key: KeyLogLevel, Type: TypeString, Default: "info", Choices: []string{"debug", "info", "warn", "error"}, Description: "Log level", EnvVar: "RESUMEBT_LOG_LEVEL"},
		{Key: KeyLogFile, Type: TypeString, Description: "Log file path, stderr if unset", EnvVar: "RESUMEBT_LOG_FILE"},
		{Key: KeyColor, Type: TypeString, Default: "auto", Choices: []string{"auto", "always", "never"}, Description: "Color mode"},
		{Key: KeyMaxTicks, Type: TypeInt, Default: "1000", Description: "Ticks before a run is abandoned, 0 for no limit"},
		{Key: KeyInterval, Type: TypeDuration, Default: "0s", Description: "Wall-clock delay between ticks"},
		{Key: KeyExprCacheSize, Type: TypeInt, Default: "1000", Description: "Compiled condition expressions to cache"},
	})
	return s
}

// Settings are the resolved, typed, option values for a command.
type Settings struct {
	LogLevel      string
	LogFile       string
	Color         string
	MaxTicks      int
	Interval      time.Duration
	ExprCacheSize int
}

// Settings resolves every option for command. Invalid values fall back to
// their defaults, and are reported in the error.
func (s *ConfigSchema) Settings(c *Config, command string) (Settings, error) {
	var errs []string
	get := func(key string) string {
		v := s.Resolve(c, command, key)
		if opt := s.Lookup(key); opt != nil {
			if err := opt.validate(v); err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", key, err))
				return opt.Default
			}
		}
		return v
	}
	settings := Settings{
		LogLevel: get(KeyLogLevel),
		LogFile:  get(KeyLogFile),
		Color:    get(KeyColor),
	}
	settings.MaxTicks, _ = strconv.Atoi(get(KeyMaxTicks))
	settings.Interval, _ = time.ParseDuration(get(KeyInterval))
	settings.ExprCacheSize, _ = strconv.Atoi(get(KeyExprCacheSize))
	if len(errs) != 0 {
		return settings, fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
	}
	return settings, nil
}
