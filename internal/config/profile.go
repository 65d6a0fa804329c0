// Package config describes a terminal session's starting conditions:
// scrollback size, environment, working directory, terminal type string,
// and color-scheme name. Font and rendering concerns stay with whatever
// draws the engine's output and are out of scope here.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultScrollback is the number of lines retained above the visible
	// screen when none is configured.
	DefaultScrollback = 10000
	// DefaultTermType is reported to the child process via $TERM.
	DefaultTermType = "xterm-256color"
	// DefaultColorScheme names the palette applied to indexed colors 0-15.
	DefaultColorScheme = "default"
)

// Profile holds the settings a Session applies when it opens a Pty and
// Emulation. Zero value is not meaningful; build one with New.
type Profile struct {
	Scrollback  int      `yaml:"scrollback,omitempty"`
	Env         []string `yaml:"env,omitempty"`
	WorkingDir  string   `yaml:"working_dir,omitempty"`
	TermType    string   `yaml:"term_type,omitempty"`
	ColorScheme string   `yaml:"color_scheme,omitempty"`
}

// Option configures a Profile during construction.
type Option func(*Profile)

// WithScrollback overrides the scrollback line count. Values <= 0 fall
// back to DefaultScrollback.
func WithScrollback(lines int) Option {
	if lines <= 0 {
		lines = DefaultScrollback
	}
	return func(p *Profile) {
		p.Scrollback = lines
	}
}

// WithEnv appends entries (in "KEY=VALUE" form) to the starting environment.
func WithEnv(env ...string) Option {
	return func(p *Profile) {
		p.Env = append(p.Env, env...)
	}
}

// WithWorkingDir sets the child process's starting directory.
func WithWorkingDir(dir string) Option {
	return func(p *Profile) {
		p.WorkingDir = dir
	}
}

// WithTermType overrides the $TERM value reported to the child.
func WithTermType(termType string) Option {
	return func(p *Profile) {
		p.TermType = termType
	}
}

// WithColorScheme names the palette applied to indexed colors 0-15.
func WithColorScheme(name string) Option {
	return func(p *Profile) {
		p.ColorScheme = name
	}
}

// New builds a Profile, applying defaults first and then opts in order.
func New(opts ...Option) *Profile {
	p := &Profile{
		Scrollback:  DefaultScrollback,
		WorkingDir:  ".",
		TermType:    DefaultTermType,
		ColorScheme: DefaultColorScheme,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load reads a Profile from a YAML file, applying defaults for any field
// the file omits.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := New()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, err
	}
	if p.Scrollback <= 0 {
		p.Scrollback = DefaultScrollback
	}
	if p.TermType == "" {
		p.TermType = DefaultTermType
	}
	if p.ColorScheme == "" {
		p.ColorScheme = DefaultColorScheme
	}
	if p.WorkingDir == "" {
		p.WorkingDir = "."
	}
	return p, nil
}

// Save persists the Profile as YAML to path.
func (p *Profile) Save(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
