package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	CatalogDir string `mapstructure:"catalog_dir"`
	DataDir    string `mapstructure:"data_dir"`
	LogLevel   string `mapstructure:"log_level"`
}

func Load() (*Config, error) {
	viper.SetConfigName("hotarudb")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()

	viper.SetEnvPrefix("HOTARUDB")
	viper.AutomaticEnv()

	// A missing config file is fine, the defaults stand.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("catalog_dir", "data/catalog")
	viper.SetDefault("data_dir", "data/tables")
	viper.SetDefault("log_level", "info")
}
