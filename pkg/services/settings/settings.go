package settings

import (
	"fmt"

	"github.com/gws-tools/scubacfg/pkg/models/domain"
	"github.com/spf13/viper"
)

type Defaults struct {
	OutputDir string   `mapstructure:"output_dir"`
	Formats   []string `mapstructure:"formats"`
	Quiet     bool     `mapstructure:"quiet"`
	DarkMode  bool     `mapstructure:"dark_mode"`
}

// LoadDefaults loads builder output defaults from the given file. New
// documents start from these instead of zero values.
func LoadDefaults(path string) (*Defaults, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read defaults file: %w", err)
	}

	var d Defaults
	if err := v.Unmarshal(&d); err != nil {
		return nil, fmt.Errorf("failed to parse defaults: %w", err)
	}
	return &d, nil
}

func (d *Defaults) Output() domain.OutputSettings {
	return domain.OutputSettings{
		Directory: d.OutputDir,
		Formats:   d.Formats,
		Quiet:     d.Quiet,
		DarkMode:  d.DarkMode,
	}
}
