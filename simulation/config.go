package simulation

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable named in spec.md §6, loaded the way
// shivamshaw23-Hintro/config/config.go loads its sub-configs: viper reads
// environment variables (optionally via a .env file), with programmatic
// defaults matching the spec filled in first.
type Config struct {
	EarthRadiusM     float64 `mapstructure:"EARTH_RADIUS_M"`
	GeohashPrecision int     `mapstructure:"GEOHASH_PRECISION"`

	NumTaxi         int     `mapstructure:"NUM_TAXI"`
	AverageSpeedMPS float64 `mapstructure:"AVERAGE_SPEED_MPS"`
	TaxiCapacity    int     `mapstructure:"TAXI_CAPACITY"`

	PatienceS int64 `mapstructure:"PATIENCE_S"`

	StartTime string `mapstructure:"START_TIME"`
	EndTime   string `mapstructure:"END_TIME"`
	TimeStep  int64  `mapstructure:"TIME_STEP"`

	VerticesPath string `mapstructure:"VERTICES_PATH"`
	EdgesPath    string `mapstructure:"EDGES_PATH"`
	QueriesDir   string `mapstructure:"QUERIES_DIR"`
	MatrixCache  string `mapstructure:"MATRIX_CACHE"`
}

// Load reads Config from environment variables (and an optional .env file
// in the working directory), falling back to spec.md §6's defaults for
// anything unset.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("EARTH_RADIUS_M", 6_371_000.0)
	viper.SetDefault("GEOHASH_PRECISION", 5)
	viper.SetDefault("NUM_TAXI", 2980)
	viper.SetDefault("AVERAGE_SPEED_MPS", 7.0)
	viper.SetDefault("TAXI_CAPACITY", 1)
	viper.SetDefault("PATIENCE_S", 300)
	viper.SetDefault("START_TIME", "09:00:00")
	viper.SetDefault("END_TIME", "09:30:00")
	viper.SetDefault("TIME_STEP", 1)
	viper.SetDefault("VERTICES_PATH", "vertices.csv")
	viper.SetDefault("EDGES_PATH", "edges.csv")
	viper.SetDefault("QUERIES_DIR", "queries")
	viper.SetDefault("MATRIX_CACHE", "")

	// Absence of a .env file is not an error; env vars or the defaults
	// above still apply.
	_ = viper.ReadInConfig()

	cfg := &Config{
		EarthRadiusM:     viper.GetFloat64("EARTH_RADIUS_M"),
		GeohashPrecision: viper.GetInt("GEOHASH_PRECISION"),
		NumTaxi:          viper.GetInt("NUM_TAXI"),
		AverageSpeedMPS:  viper.GetFloat64("AVERAGE_SPEED_MPS"),
		TaxiCapacity:     viper.GetInt("TAXI_CAPACITY"),
		PatienceS:        viper.GetInt64("PATIENCE_S"),
		StartTime:        viper.GetString("START_TIME"),
		EndTime:          viper.GetString("END_TIME"),
		TimeStep:         viper.GetInt64("TIME_STEP"),
		VerticesPath:     viper.GetString("VERTICES_PATH"),
		EdgesPath:        viper.GetString("EDGES_PATH"),
		QueriesDir:       viper.GetString("QUERIES_DIR"),
		MatrixCache:      viper.GetString("MATRIX_CACHE"),
	}

	return cfg, nil
}

// SimStartSeconds converts StartTime ("HH:MM:SS") to seconds-since-midnight.
func (c *Config) SimStartSeconds() (int64, error) {
	return parseHHMMSS(c.StartTime)
}

// SimEndSeconds converts EndTime ("HH:MM:SS") to seconds-since-midnight.
func (c *Config) SimEndSeconds() (int64, error) {
	return parseHHMMSS(c.EndTime)
}

func parseHHMMSS(s string) (int64, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return 0, fmt.Errorf("simulation: bad HH:MM:SS time %q: %w", s, err)
	}
	return int64(t.Hour()*3600 + t.Minute()*60 + t.Second()), nil
}
