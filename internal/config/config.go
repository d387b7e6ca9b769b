// Package config loads the test runner configuration: defaults, overlaid by
// an optional YAML file, overlaid by environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Run modes.
const (
	ModeMock = "mock"
	ModeLive = "live"
)

// Duration wraps time.Duration so YAML values read as "5s" or "250ms".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the full runner configuration.
type Config struct {
	Mode    string `yaml:"mode"`
	BaseURL string `yaml:"baseUrl"`
	Headed  bool   `yaml:"headed"`

	ReportsDir string `yaml:"reportsDir"`

	Timeouts struct {
		Wait       Duration `yaml:"wait"`
		Navigation Duration `yaml:"navigation"`
		Poll       Duration `yaml:"poll"`
	} `yaml:"timeouts"`

	Performance struct {
		PageLoad    Duration `yaml:"pageLoad"`
		APICall     Duration `yaml:"apiCall"`
		Interaction Duration `yaml:"interaction"`
	} `yaml:"performance"`
}

// Default is the configuration used when nothing is provided.
func Default() Config {
	var c Config
	c.Mode = ModeMock
	c.ReportsDir = "reports"
	c.Timeouts.Wait = Duration(5 * time.Second)
	c.Timeouts.Navigation = Duration(30 * time.Second)
	c.Timeouts.Poll = Duration(100 * time.Millisecond)
	c.Performance.PageLoad = Duration(3 * time.Second)
	c.Performance.APICall = Duration(500 * time.Millisecond)
	c.Performance.Interaction = Duration(time.Second)
	return c
}

// Load builds the configuration from defaults, the YAML file at path if
// path is non-empty, and finally the environment.
func Load(path string) (Config, error) {
	c := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return c, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	c.applyEnv()
	if err := c.validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SHOPTEST_MODE"); v != "" {
		c.Mode = v
	}
	if v := os.Getenv("SHOPTEST_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("SHOPTEST_REPORTS_DIR"); v != "" {
		c.ReportsDir = v
	}
	if v := os.Getenv("SHOPTEST_HEADED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Headed = b
		}
	}
	if v := os.Getenv("SHOPTEST_WAIT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeouts.Wait = Duration(d)
		}
	}
}

func (c *Config) validate() error {
	switch c.Mode {
	case ModeMock, ModeLive:
	default:
		return fmt.Errorf("unknown mode %q, want %q or %q", c.Mode, ModeMock, ModeLive)
	}
	if c.Timeouts.Wait <= 0 || c.Timeouts.Navigation <= 0 || c.Timeouts.Poll <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	return nil
}

// PerfThresholds flattens the performance section into the monitor's
// category map.
func (c Config) PerfThresholds() map[string]time.Duration {
	return map[string]time.Duration{
		"page_load":   c.Performance.PageLoad.Std(),
		"api_call":    c.Performance.APICall.Std(),
		"interaction": c.Performance.Interaction.Std(),
	}
}
