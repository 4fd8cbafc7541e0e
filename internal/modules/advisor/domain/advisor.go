package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	ErrPluginDisabled   = errors.New("advisor plugin is disabled")
	ErrChecksumMismatch = errors.New("advisor plugin checksum mismatch")
	ErrPluginTimeout    = errors.New("advisor plugin timeout")
)

var (
	sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)
	namePattern   = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
)

// Manifest describes one advisor binary. It is read from <plugin_dir>/<name>/plugin.yaml.
type Manifest struct {
	Name      string `yaml:"name"`
	Version   string `yaml:"version"`
	Binary    string `yaml:"binary"`
	SHA256    string `yaml:"sha256,omitempty"`
	Enabled   bool   `yaml:"enabled"`
	TimeoutMS int    `yaml:"timeout_ms,omitempty"`
}

func (m Manifest) Validate() error {
	if !namePattern.MatchString(m.Name) {
		return fmt.Errorf("advisor name %q must be lowercase letters, digits, dash or underscore", m.Name)
	}
	if strings.TrimSpace(m.Binary) == "" {
		return fmt.Errorf("advisor %s: binary path is required", m.Name)
	}
	if m.SHA256 != "" && !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("advisor %s: sha256 must be lowercase 64-char hex", m.Name)
	}
	if m.TimeoutMS < 0 {
		return fmt.Errorf("advisor %s: timeout must be non-negative", m.Name)
	}
	return nil
}

// Timeout is the per-call budget, falling back when the manifest leaves it unset.
func (m Manifest) Timeout(fallback time.Duration) time.Duration {
	if m.TimeoutMS > 0 {
		return time.Duration(m.TimeoutMS) * time.Millisecond
	}
	return fallback
}

type Metadata struct {
	Name        string
	Version     string
	Description string
}

type AppHours struct {
	App   string
	Hours float64
}

// Request is the weekly snapshot an advisor reasons about.
type Request struct {
	UserID        string
	AsOf          time.Time
	WeeklyUsage   []AppHours
	WeeklyHours   float64
	WeeklyLoss    float64
	ReferenceRate float64
}

type Suggestion struct {
	ID              string
	Title           string
	Description     string
	App             string
	CurrentCost     float64
	PotentialSaving float64
	Difficulty      string
}

func (s Suggestion) Validate() error {
	if strings.TrimSpace(s.ID) == "" || strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("suggestion id and title are required")
	}
	if s.CurrentCost < 0 || s.PotentialSaving < 0 {
		return fmt.Errorf("suggestion %s: amounts must be non-negative", s.ID)
	}
	switch s.Difficulty {
	case "", "easy", "medium", "hard":
		return nil
	default:
		return fmt.Errorf("suggestion %s: unknown difficulty %q", s.ID, s.Difficulty)
	}
}
