package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// LoadPriceModel builds the active calibration in layers: built-in defaults,
// then the YAML file at path if one is given, then TIMBER_* environment
// variables. When path is set but the file does not exist yet, the defaults
// are written there first so operators have a template to edit.
//
// Keys use dots in config and underscores in the environment, so
// a.per_diameter_cm is overridden by TIMBER_A_PER_DIAMETER_CM.
func LoadPriceModel(path string) (*PriceModel, error) {
	v := viper.New()
	v.SetEnvPrefix("TIMBER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := DefaultPriceModel()
	v.SetDefault("version", def.Version)
	for _, rc := range []struct {
		key  string
		coef RankCoefficients
	}{
		{"a", def.A},
		{"b", def.B},
		{"c", def.C},
	} {
		v.SetDefault(rc.key+".per_diameter_cm", rc.coef.PerDiameterCM)
		v.SetDefault(rc.key+".per_length_m", rc.coef.PerLengthM)
		v.SetDefault(rc.key+".base", rc.coef.Base)
		v.SetDefault(rc.key+".confidence_interval", rc.coef.ConfidenceInterval)
	}

	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := SavePriceModel(path, def); err != nil {
				return nil, fmt.Errorf("seeding price model file: %w", err)
			}
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading price model file: %w", err)
		}
	}

	var m PriceModel
	if err := v.Unmarshal(&m); err != nil {
		return nil, fmt.Errorf("parsing price model: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid price model: %w", err)
	}
	return &m, nil
}

// SavePriceModel writes a calibration as YAML, creating parent directories
// as needed.
func SavePriceModel(path string, m *PriceModel) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding price model: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating model directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing price model file: %w", err)
	}
	return nil
}
