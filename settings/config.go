// Package settings loads pricer configuration from JSON, YAML or TOML files
// with THEO_ environment overrides.
package settings

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/tantralabs/theo/logger"
	"github.com/tantralabs/theo/models"
	"github.com/tantralabs/theo/montecarlo"
)

const envPrefix = "THEO"

type Config struct {
	Lattice    LatticeConfig    `mapstructure:"lattice"`
	MonteCarlo MonteCarloConfig `mapstructure:"montecarlo"`
	Chain      ChainConfig      `mapstructure:"chain"`
	Log        LogConfig        `mapstructure:"log"`
}

type LatticeConfig struct {
	Depth        int     `mapstructure:"depth"`
	Strike       float64 `mapstructure:"strike"`
	Spot         float64 `mapstructure:"spot"`
	Rate         float64 `mapstructure:"rate"`
	Volatility   float64 `mapstructure:"volatility"`
	Maturity     float64 `mapstructure:"maturity"`
	Kind         string  `mapstructure:"kind"`
	Style        string  `mapstructure:"style"`
	Convention   string  `mapstructure:"convention"`
	ComputeDelta bool    `mapstructure:"compute_delta"`
}

type MonteCarloConfig struct {
	Steps       int     `mapstructure:"steps"`
	Paths       int     `mapstructure:"paths"`
	Repetitions int     `mapstructure:"repetitions"`
	Epsilon     float64 `mapstructure:"epsilon"`
	Seed        int64   `mapstructure:"seed"`
	CommonSeed  bool    `mapstructure:"common_seed"`
}

// ChainConfig sizes the strike chain valued by options.TheoEngine.
type ChainConfig struct {
	NumStrikes     int     `mapstructure:"num_strikes"`
	StrikeInterval float64 `mapstructure:"strike_interval"`
	Concurrency    int     `mapstructure:"concurrency"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

// LoadConfig reads the file at path over the defaults. An empty path returns
// the defaults with any environment overrides applied.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("lattice.depth", 50)
	v.SetDefault("lattice.strike", 99.)
	v.SetDefault("lattice.spot", 100.)
	v.SetDefault("lattice.rate", .06)
	v.SetDefault("lattice.volatility", .2)
	v.SetDefault("lattice.maturity", 1.)
	v.SetDefault("lattice.kind", string(models.Call))
	v.SetDefault("lattice.style", string(models.European))
	v.SetDefault("lattice.convention", string(models.CRR))
	v.SetDefault("lattice.compute_delta", false)

	v.SetDefault("montecarlo.steps", 365)
	v.SetDefault("montecarlo.paths", 10000)
	v.SetDefault("montecarlo.repetitions", 8)
	v.SetDefault("montecarlo.epsilon", .1)
	v.SetDefault("montecarlo.seed", 1)
	v.SetDefault("montecarlo.common_seed", true)

	v.SetDefault("chain.num_strikes", 10)
	v.SetDefault("chain.strike_interval", 5.)
	v.SetDefault("chain.concurrency", 4)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
}

// InitLogger applies the log section to the package logger.
func (c Config) InitLogger() error {
	return logger.Init(c.Log.Level, c.Log.Encoding)
}

// LatticeParams converts the lattice section, parsing its enum strings.
func (c Config) LatticeParams() (models.Params, error) {
	kind, err := models.ParseOptionKind(c.Lattice.Kind)
	if err != nil {
		return models.Params{}, err
	}
	style, err := models.ParseExerciseStyle(c.Lattice.Style)
	if err != nil {
		return models.Params{}, err
	}
	convention, err := models.ParseFactorConvention(c.Lattice.Convention)
	if err != nil {
		return models.Params{}, err
	}
	return models.Params{
		Depth:        c.Lattice.Depth,
		Strike:       c.Lattice.Strike,
		Spot:         c.Lattice.Spot,
		Rate:         c.Lattice.Rate,
		Volatility:   c.Lattice.Volatility,
		Maturity:     c.Lattice.Maturity,
		Kind:         kind,
		Style:        style,
		Convention:   convention,
		ComputeDelta: c.Lattice.ComputeDelta,
	}, nil
}

func (c Config) EuropeanParams() (montecarlo.EuropeanParams, error) {
	kind, err := models.ParseOptionKind(c.Lattice.Kind)
	if err != nil {
		return montecarlo.EuropeanParams{}, err
	}
	return montecarlo.EuropeanParams{
		Spot:       c.Lattice.Spot,
		Strike:     c.Lattice.Strike,
		Rate:       c.Lattice.Rate,
		Volatility: c.Lattice.Volatility,
		Maturity:   c.Lattice.Maturity,
		Kind:       kind,
		Steps:      c.MonteCarlo.Steps,
		Paths:      c.MonteCarlo.Paths,
		Seed:       c.MonteCarlo.Seed,
	}, nil
}

func (c Config) HedgeParams(payoff montecarlo.Payoff) montecarlo.HedgeParams {
	return montecarlo.HedgeParams{
		Spot:        c.Lattice.Spot,
		Strike:      c.Lattice.Strike,
		Rate:        c.Lattice.Rate,
		Volatility:  c.Lattice.Volatility,
		Maturity:    c.Lattice.Maturity,
		Payoff:      payoff,
		Epsilon:     c.MonteCarlo.Epsilon,
		Paths:       c.MonteCarlo.Paths,
		Repetitions: c.MonteCarlo.Repetitions,
		CommonSeed:  c.MonteCarlo.CommonSeed,
		Seed:        c.MonteCarlo.Seed,
	}
}

func (c Config) AsianParams() montecarlo.AsianParams {
	return montecarlo.AsianParams{
		Spot:       c.Lattice.Spot,
		Strike:     c.Lattice.Strike,
		Rate:       c.Lattice.Rate,
		Volatility: c.Lattice.Volatility,
		Maturity:   c.Lattice.Maturity,
		Steps:      c.MonteCarlo.Steps,
		Paths:      c.MonteCarlo.Paths,
		Seed:       c.MonteCarlo.Seed,
	}
}
