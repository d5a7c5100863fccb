package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Interval is a duration that also accepts a bare integer as seconds, so
// both "90s" and "90" mean a minute and a half.
type Interval time.Duration

func (i Interval) Duration() time.Duration { return time.Duration(i) }

func (i Interval) String() string { return time.Duration(i).String() }

// UnmarshalText is used by cleanenv for env values and env-default.
func (i *Interval) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*i = Interval(time.Duration(n) * time.Second)
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("interval %q: want seconds or a duration like 90s", s)
	}
	*i = Interval(d)
	return nil
}

func (i *Interval) UnmarshalYAML(node *yaml.Node) error {
	return i.UnmarshalText([]byte(node.Value))
}
