// Package config defines the data structures related to configuration and
// includes functions for loading and validating it.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/runway-forecast/internal/query"
	"github.com/iwvelando/runway-forecast/pkg/constants"
	"github.com/iwvelando/runway-forecast/pkg/mathutil"
	"github.com/iwvelando/runway-forecast/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for runway-forecast.
type Configuration struct {
	Inputs  query.Request `yaml:"inputs,omitempty" mapstructure:"inputs"`
	Logging LoggingConfig `yaml:"logging,omitempty" mapstructure:"logging"`
	Output  OutputConfig  `yaml:"output,omitempty" mapstructure:"output"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, json
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Values may be overridden by RUNWAY_-prefixed
// environment variables, e.g. RUNWAY_INPUTS_REVENUE.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

// envKeys are bound explicitly so that an environment variable can supply
// a key the config file leaves out.
var envKeys = []string{
	"inputs.title",
	"inputs.startingAmount",
	"inputs.revenue",
	"inputs.income",
	"inputs.expenses",
	"inputs.revenueAPR",
	"inputs.expenseAPR",
	"inputs.period",
	"logging.level",
	"logging.format",
	"logging.outputFile",
	"output.format",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		_ = v.BindEnv(key, EnvName(key))
	}
	return v
}

// EnvName returns the environment variable that overrides a config key,
// e.g. RUNWAY_INPUTS_REVENUE for inputs.revenue.
func EnvName(key string) string {
	return constants.EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	// The legacy income key stands in for revenue when revenue is absent.
	if !v.IsSet("inputs.revenue") && v.IsSet("inputs.income") {
		configuration.Inputs.Revenue = v.GetString("inputs.income")
	}

	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			warnings = append(warnings, err.Error())
		}
	}

	warnings = append(warnings, c.Inputs.Warnings()...)
	if !c.Inputs.Ready() {
		warnings = append(warnings, "revenue and expenses are both required to produce a projection")
	}

	warnings = append(warnings, validation.RateWarnings(
		mathutil.ParseAmount(c.Inputs.RevenueAPR),
		mathutil.ParseAmount(c.Inputs.ExpenseAPR),
	)...)
	warnings = append(warnings, validation.FigureWarnings(
		mathutil.ParseAmount(c.Inputs.Revenue),
		mathutil.ParseAmount(c.Inputs.Expenses),
	)...)

	return warnings
}
