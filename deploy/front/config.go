package main

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Broker struct {
		Host       string `mapstructure:"host"`
		Port       int    `mapstructure:"port"`
		StateTopic string `mapstructure:"state_topic"`
		ClientID   string `mapstructure:"client_id"`
		UserName   string `mapstructure:"user_name"`
		Password   string `mapstructure:"password"`
	} `mapstructure:"broker"`
	Logger struct {
		Level       string `mapstructure:"level"`
		PrettyPrint bool   `mapstructure:"pretty_print"`
	} `mapstructure:"logger"`
}

func loadConfig() (*Config, error) {
	viper.SetEnvPrefix("RADIO_FRONT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("broker.host")
	viper.BindEnv("broker.port")
	viper.BindEnv("broker.state_topic")
	viper.BindEnv("broker.client_id")
	viper.BindEnv("broker.user_name")
	viper.BindEnv("broker.password")
	viper.BindEnv("logger.level")

	viper.SetDefault("broker.port", 1883)
	viper.SetDefault("broker.state_topic", "radio-box/state")
	viper.SetDefault("broker.client_id", "radio-box-front")
	viper.SetDefault("logger.level", "info")

	viper.SetConfigName("front")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/radio-box")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
