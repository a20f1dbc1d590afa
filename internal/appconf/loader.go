package appconf

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML shape of a config file. All fields are optional;
// file values override flag and environment defaults.
type FileConfig struct {
	Port            int           `yaml:"port" validate:"omitempty,gt=0,lte=65535"`
	Env             string        `yaml:"env" validate:"omitempty,oneof=development test production"`
	ApiKeys         []string `yaml:"api_keys"`
	ServiceKey      string   `yaml:"service_key"`
	CityCode        int      `yaml:"city_code" validate:"omitempty,gt=0"`
	DataDir         string   `yaml:"data_dir"`
	RefreshInterval string   `yaml:"refresh_interval"` // e.g. "30s"
	SessionTTL      string   `yaml:"session_ttl"`
}

// LoadFile reads and validates a YAML config file and overlays it onto cfg.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("appconf: read %s: %w", path, err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("appconf: parse %s: %w", path, err)
	}

	v := validator.New()
	if err := v.Struct(fc); err != nil {
		return fmt.Errorf("appconf: validate %s: %w", path, err)
	}

	if fc.Port != 0 {
		cfg.Port = fc.Port
	}
	if fc.Env != "" {
		cfg.Env = EnvFlagToEnvironment(fc.Env)
	}
	if len(fc.ApiKeys) > 0 {
		cfg.ApiKeys = fc.ApiKeys
	}
	if fc.ServiceKey != "" {
		cfg.ServiceKey = fc.ServiceKey
	}
	if fc.CityCode != 0 {
		cfg.CityCode = fc.CityCode
	}
	if fc.DataDir != "" {
		cfg.DataDir = fc.DataDir
	}
	if fc.RefreshInterval != "" {
		d, err := time.ParseDuration(fc.RefreshInterval)
		if err != nil || d <= 0 {
			return fmt.Errorf("appconf: invalid refresh_interval %q", fc.RefreshInterval)
		}
		cfg.RefreshInterval = d
	}
	if fc.SessionTTL != "" {
		d, err := time.ParseDuration(fc.SessionTTL)
		if err != nil || d <= 0 {
			return fmt.Errorf("appconf: invalid session_ttl %q", fc.SessionTTL)
		}
		cfg.SessionTTL = d
	}
	return nil
}
