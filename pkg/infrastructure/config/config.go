package config

import "github.com/spf13/viper"

// Config holds runtime configuration for the planning core and its CLI
type Config struct {
	App struct {
		Env string
	} `mapstructure:"app"`

	Postgres struct {
		DSN string
	} `mapstructure:"postgres"`

	Planning struct {
		IncludeExpiredLots  bool `mapstructure:"include_expired_lots"`
		SubtractSafetyStock bool `mapstructure:"subtract_safety_stock"`
		MaxBOMDepth         int  `mapstructure:"max_bom_depth"`
	} `mapstructure:"planning"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`
}

// Load reads configuration from the given file, with MRP_-prefixed
// environment variables taking precedence.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("MRP")
	v.AutomaticEnv()

	v.SetDefault("app.env", "prod")
	v.SetDefault("planning.max_bom_depth", 50)

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}
