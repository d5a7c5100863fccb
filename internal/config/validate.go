package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Section names a configuration block a binary depends on.
type Section string

const (
	SectionDatabase       Section = "database"
	SectionAuth           Section = "auth"
	SectionServiceAccount Section = "service_account"
	SectionTasksURL       Section = "tasks_url"
	SectionCommentsURL    Section = "comments_url"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
// Only rules that hold for every binary live here; see Require.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret != "" && len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Auth.PasswordHashCost != 0 && (c.Auth.PasswordHashCost < 4 || c.Auth.PasswordHashCost > 31) {
		return fmt.Errorf("auth.password_hash_cost must be between 4 and 31 (got %d)", c.Auth.PasswordHashCost)
	}

	if err := c.Lifecycle.validate(); err != nil {
		return fmt.Errorf("lifecycle: %w", err)
	}

	if c.Services.RequestTimeout <= 0 {
		return fmt.Errorf("services.request_timeout must be > 0 (got %v)", c.Services.RequestTimeout)
	}

	if c.Cache.ResponseTTL < 0 || c.Cache.ExistenceTTL < 0 {
		return fmt.Errorf("cache ttl must be >= 0")
	}

	if c.Bot.Locale != "" && c.Bot.Locale != "en" && c.Bot.Locale != "ru" {
		return fmt.Errorf("bot.locale must be en or ru (got %q)", c.Bot.Locale)
	}

	return nil
}

// Require checks that the given sections are populated.
func (c *Config) Require(sections ...Section) error {
	var missing []string
	for _, s := range sections {
		switch s {
		case SectionDatabase:
			if c.Database.DSN == "" {
				missing = append(missing, "database.dsn")
			}
		case SectionAuth:
			if c.Auth.JWTSecret == "" {
				missing = append(missing, "auth.jwt_secret")
			}
		case SectionServiceAccount:
			if c.Services.Username == "" {
				missing = append(missing, "services.username")
			}
			if c.Services.Password == "" {
				missing = append(missing, "services.password")
			}
		case SectionTasksURL:
			if err := checkURL(c.Services.TasksURL); err != nil {
				missing = append(missing, "services.tasks_url: "+err.Error())
			}
		case SectionCommentsURL:
			if err := checkURL(c.Services.CommentsURL); err != nil {
				missing = append(missing, "services.comments_url: "+err.Error())
			}
		default:
			return fmt.Errorf("config: unknown section %q", s)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing or invalid: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (l *LifecycleConfig) validate() error {
	if l.CompletedEnabled && l.CompletedInterval <= 0 {
		return fmt.Errorf("completed_interval must be > 0 (got %v)", l.CompletedInterval)
	}
	if l.OverdueEnabled && l.OverdueInterval <= 0 {
		return fmt.Errorf("overdue_interval must be > 0 (got %v)", l.OverdueInterval)
	}
	return nil
}

func checkURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("host is empty")
	}
	return nil
}
