// Package constants provides shared constants for the runway-forecast application.
package constants

// AnchorDateLayout is the format accepted for an explicit projection anchor
// date on the CLI and the HTTP API.
const AnchorDateLayout = "2006-01-02"

// Label layouts for projected months.
const (
	// ShortHorizonLabelLayout includes the day of month.
	ShortHorizonLabelLayout = "Jan 2, 2006"

	// LongHorizonLabelLayout suppresses the day of month to reduce clutter.
	LongHorizonLabelLayout = "Jan 2006"

	// DayLabelMaxMonths is the longest horizon that still shows day-of-month labels.
	DayLabelMaxMonths = 12
)

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyPlaces is the number of decimal places shown for currency
	CurrencyPlaces = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// DefaultPeriod is the horizon key used when none is selected.
const DefaultPeriod = "1yr"

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment overrides of config keys, e.g. RUNWAY_INPUTS_REVENUE.
	EnvPrefix = "RUNWAY"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum JSON request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultShutdownTimeoutSeconds bounds graceful shutdown
	DefaultShutdownTimeoutSeconds = 10

	// RequestIDHeader carries the per-request identifier
	RequestIDHeader = "X-Request-ID"
)
