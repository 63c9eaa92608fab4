package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/iwvelando/runway-forecast/internal/config"
	"github.com/iwvelando/runway-forecast/internal/forecast"
	"github.com/iwvelando/runway-forecast/internal/logging"
	"github.com/iwvelando/runway-forecast/internal/optimizer"
	"github.com/iwvelando/runway-forecast/internal/query"
	"github.com/iwvelando/runway-forecast/pkg/constants"
	"github.com/iwvelando/runway-forecast/pkg/datetime"
	"github.com/iwvelando/runway-forecast/pkg/mathutil"
	"github.com/iwvelando/runway-forecast/pkg/optimization"
	"github.com/iwvelando/runway-forecast/pkg/output"
	"github.com/iwvelando/runway-forecast/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, time.Now()); err != nil {
		errorLogger(os.Stderr).Fatal("runway-forecast failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

// errorLogger reports failures that may happen before the configured logger
// exists.
func errorLogger(w io.Writer) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(w),
		zapcore.ErrorLevel,
	)
	return zap.New(core)
}

func run(args []string, stdout io.Writer, now time.Time) error {
	fset := flag.NewFlagSet("runway-forecast", flag.ContinueOnError)
	configLocation := fset.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := fset.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := fset.String("log-level", "", "log level override (debug, info, warn, error)")
	asOf := fset.String("as-of", "", "anchor date for month labels (YYYY-MM-DD), defaults to today")
	optimizeField := fset.String("optimize", "", "goal-seek a field so net worth holds the floor: revenue or expenses")
	floorFlag := fset.String("floor", "0", "minimum net worth to hold when optimizing")

	var overrides query.Request
	fset.StringVar(&overrides.Title, "title", "", "projection title")
	fset.StringVar(&overrides.StartingAmount, "starting-amount", "", "starting balance")
	fset.StringVar(&overrides.Revenue, "revenue", "", "monthly revenue")
	fset.StringVar(&overrides.Expenses, "expenses", "", "monthly expenses")
	fset.StringVar(&overrides.RevenueAPR, "revenue-apr", "", "annual revenue growth rate in percent")
	fset.StringVar(&overrides.ExpenseAPR, "expense-apr", "", "annual expense growth rate in percent")
	fset.StringVar(&overrides.Period, "period", "", "horizon: 3m, 6m, 1yr, 3yr, 5yr, 10yr, 25yr, 50yr, 100yr")
	if err := fset.Parse(args); err != nil {
		return err
	}

	conf, err := loadConfiguration(fset, *configLocation)
	if err != nil {
		return err
	}
	conf.Inputs = conf.Inputs.Merge(overrides)

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	anchor, err := datetime.ParseAnchor(*asOf, now)
	if err != nil {
		return fmt.Errorf("invalid -as-of date %q: %w", *asOf, err)
	}

	var summary *optimization.Summary
	if *optimizeField != "" {
		optimized, err := optimize(logger, &conf.Inputs, anchor, *optimizeField, *floorFlag)
		if err != nil {
			return err
		}
		summary = &optimized
	}

	result := forecast.GetForecast(logger, conf.Inputs, anchor)

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(stdout, result)
		if summary != nil {
			output.PrettyOptimization(stdout, *summary)
		}
	case constants.OutputFormatCSV:
		return output.CsvFormat(stdout, result)
	case constants.OutputFormatJSON:
		doc := output.NewDocument(result)
		doc.Optimization = summary
		return output.JSONFormat(stdout, doc)
	}
	return nil
}

// optimize goal-seeks the named field and writes the result back into inputs.
func optimize(logger *zap.Logger, inputs *query.Request, anchor time.Time, fieldName, floorValue string) (optimization.Summary, error) {
	field, err := optimizer.ParseField(fieldName)
	if err != nil {
		return optimization.Summary{}, err
	}
	floor, ok := mathutil.ParseNumber(floorValue)
	if !ok {
		return optimization.Summary{}, fmt.Errorf("invalid -floor value %q", floorValue)
	}

	summary, err := optimizer.NewRunner(logger, anchor).Run(*inputs, optimizer.Directive{Field: field, Floor: floor})
	if err != nil {
		return optimization.Summary{}, fmt.Errorf("optimizer execution failed: %w", err)
	}

	value := strconv.FormatFloat(summary.Value, 'f', 2, 64)
	if field == optimizer.FieldRevenue {
		inputs.Revenue = value
	} else {
		inputs.Expenses = value
	}
	return summary, nil
}

// loadConfiguration reads the config file. A missing file is only an error
// when -config was given explicitly.
func loadConfiguration(fset *flag.FlagSet, path string) (*config.Configuration, error) {
	explicit := false
	fset.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})

	if !explicit {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return &config.Configuration{}, nil
		}
	}

	conf, err := config.LoadConfiguration(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration at %s: %w", path, err)
	}
	return conf, nil
}
