package config

import (
	"strings"
	"time"

	"github.com/kbukum/systolic/chain"
	"github.com/kbukum/systolic/errors"
	"github.com/kbukum/systolic/logger"
	"github.com/kbukum/systolic/validation"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// Config holds every option the CLI and the HTTP service understand.
type Config struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`

	// WithX is the comma separated list of input values.
	WithX string `yaml:"with_x" mapstructure:"with_x"`
	// Coefs is a comma separated coefficient list, highest degree first.
	Coefs string `yaml:"coefs" mapstructure:"coefs"`
	// Equation is a polynomial in X.
	Equation string `yaml:"equation" mapstructure:"equation"`
	// ChainFile is the path of a YAML chain spec.
	ChainFile string `yaml:"chain" mapstructure:"chain"`

	Verbose     bool   `yaml:"verbose" mapstructure:"verbose"`
	Stream      bool   `yaml:"stream" mapstructure:"stream"`
	Format      string `yaml:"format" mapstructure:"format" validate:"oneof=text json yaml"`
	Parallelism int    `yaml:"parallel" mapstructure:"parallel" validate:"gte=0,lte=256"`

	Logging   logger.Config   `yaml:"logging" mapstructure:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
}

// TelemetryConfig configures OpenTelemetry export.
type TelemetryConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// ServerConfig configures the HTTP evaluation service.
type ServerConfig struct {
	Addr            string        `yaml:"addr" mapstructure:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	// MaxInputs bounds the inputs accepted by one request.
	MaxInputs int `yaml:"max_inputs" mapstructure:"max_inputs" validate:"gte=0"`
	// MaxConcurrent bounds evaluations running at once; QueueWait is how
	// long a request waits for a slot before it is rejected as busy.
	MaxConcurrent int           `yaml:"max_concurrent" mapstructure:"max_concurrent" validate:"gte=0"`
	QueueWait     time.Duration `yaml:"queue_wait" mapstructure:"queue_wait"`
	// MaxCells bounds the chain length of one request.
	MaxCells int `yaml:"max_cells" mapstructure:"max_cells" validate:"gte=0"`
	// MaxTraceCells bounds the cell states a traced request records: steps
	// times chain length.
	MaxTraceCells int `yaml:"max_trace_cells" mapstructure:"max_trace_cells" validate:"gte=0"`
	// MaxBodySize bounds the request body, e.g. "1MB" or "512KB".
	MaxBodySize string `yaml:"max_body_size" mapstructure:"max_body_size"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "systolic"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	c.Format = strings.ToLower(c.Format)
	if c.Format == "" {
		c.Format = FormatText
	}
	if c.Verbose && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
	c.Server.ApplyDefaults()
}

// ApplyDefaults fills unset telemetry fields.
func (c *TelemetryConfig) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
		c.Insecure = true
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
}

// ApplyDefaults fills unset server fields.
func (c *ServerConfig) ApplyDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 10 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 30 * time.Second
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 5 * time.Second
	}
	if c.MaxInputs == 0 {
		c.MaxInputs = 10000
	}
	if c.MaxConcurrent == 0 {
		c.MaxConcurrent = 64
	}
	if c.MaxCells == 0 {
		c.MaxCells = 8192
	}
	if c.MaxTraceCells == 0 {
		c.MaxTraceCells = 100000
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "1MB"
	}
}

// Validate checks the options shared by every command.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return errors.InvalidInput("logging", err.Error())
	}
	return nil
}

// ValidateEval checks the options of a one-shot evaluation: inputs are
// required unless streaming, and exactly one chain source must be chosen.
// Streaming prints outputs as they leave the chain and has no step diagram,
// so it cannot be combined with verbose.
func (c *Config) ValidateEval() error {
	if err := c.Validate(); err != nil {
		return err
	}

	sources := map[string]bool{
		"coefs":    strings.TrimSpace(c.Coefs) != "",
		"equation": strings.TrimSpace(c.Equation) != "",
		"chain":    strings.TrimSpace(c.ChainFile) != "",
	}
	if appErr := validation.New().Exclusive(sources).Validate(); appErr != nil {
		return errors.Conflict("--coefs, --equation and --chain cannot be used together").WithCause(appErr)
	}
	if !sources["coefs"] && !sources["equation"] && !sources["chain"] {
		return errors.MissingField("coefs, equation or chain")
	}
	if c.Stream && c.Verbose {
		return errors.Conflict("--verbose and --stream cannot be used together")
	}
	if !c.Stream && strings.TrimSpace(c.WithX) == "" {
		return errors.MissingField("with-x")
	}

	v := validation.New().
		IntList("with-x", c.WithX).
		IntList("coefs", c.Coefs)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// Inputs parses the input list. It is empty when streaming from stdin.
func (c *Config) Inputs() ([]int, error) {
	if strings.TrimSpace(c.WithX) == "" {
		return nil, nil
	}
	return validation.ParseIntList("with-x", c.WithX)
}

// ChainSpec returns the chain source selected by the options.
func (c *Config) ChainSpec() (*chain.Spec, error) {
	switch {
	case strings.TrimSpace(c.ChainFile) != "":
		return chain.LoadSpec(c.ChainFile)
	case strings.TrimSpace(c.Coefs) != "":
		coefs, err := validation.ParseIntList("coefs", c.Coefs)
		if err != nil {
			return nil, err
		}
		return &chain.Spec{Name: "coefs", Coefficients: coefs}, nil
	case strings.TrimSpace(c.Equation) != "":
		return &chain.Spec{Name: "equation", Equation: c.Equation}, nil
	}
	return nil, errors.MissingField("coefs, equation or chain")
}
