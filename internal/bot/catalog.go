package bot

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFiles embed.FS

// DefaultLocale is used when a chat has not picked a language.
const DefaultLocale = "en"

// Locales lists the supported languages in menu order.
var Locales = []string{"en", "ru"}

// Catalog holds the message texts of every supported locale.
type Catalog struct {
	messages map[string]map[string]string
}

// LoadCatalog parses the embedded message files.
func LoadCatalog() (*Catalog, error) {
	c := &Catalog{messages: make(map[string]map[string]string, len(Locales))}
	for _, locale := range Locales {
		raw, err := localeFiles.ReadFile(path.Join("locales", locale+".yaml"))
		if err != nil {
			return nil, fmt.Errorf("read %s catalog: %w", locale, err)
		}
		msgs := make(map[string]string)
		if err := yaml.Unmarshal(raw, &msgs); err != nil {
			return nil, fmt.Errorf("parse %s catalog: %w", locale, err)
		}
		c.messages[locale] = msgs
	}
	return c, nil
}

// Supported reports whether locale has a catalog.
func (c *Catalog) Supported(locale string) bool {
	_, ok := c.messages[locale]
	return ok
}

// Text returns the message for key, formatted with args when given.
// Missing keys fall back to the default locale, then to the key itself.
func (c *Catalog) Text(locale, key string, args ...any) string {
	msg, ok := c.messages[locale][key]
	if !ok {
		msg, ok = c.messages[DefaultLocale][key]
	}
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// Lines joins several catalog texts with newlines.
func (c *Catalog) Lines(locale string, keys ...string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = c.Text(locale, k)
	}
	return strings.Join(parts, "\n")
}
