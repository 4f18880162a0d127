package main

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr  string `mapstructure:"addr"`
		Debug bool   `mapstructure:"debug"`
	} `mapstructure:"http"`
	Broker struct {
		Enabled    bool   `mapstructure:"enabled"`
		Host       string `mapstructure:"host"`
		Port       int    `mapstructure:"port"`
		StateTopic string `mapstructure:"state_topic"`
		ClientID   string `mapstructure:"client_id"`
		UserName   string `mapstructure:"user_name"`
		Password   string `mapstructure:"password"`
	} `mapstructure:"broker"`
	Storage struct {
		DataDir     string `mapstructure:"data_dir"`
		FallbackDir string `mapstructure:"fallback_dir"`
	} `mapstructure:"storage"`
	GPIO struct {
		Enabled   bool `mapstructure:"enabled"`
		ButtonPin int  `mapstructure:"button_pin"`
		LedPin    int  `mapstructure:"led_pin"`
	} `mapstructure:"gpio"`
	WiFi struct {
		Enabled    bool   `mapstructure:"enabled"`
		Interface  string `mapstructure:"interface"`
		APSSID     string `mapstructure:"ap_ssid"`
		APPassword string `mapstructure:"ap_password"`
	} `mapstructure:"wifi"`
	Loop struct {
		TickMs int `mapstructure:"tick_ms"`
	} `mapstructure:"loop"`
	Stream struct {
		ReconnectDelayMs int `mapstructure:"reconnect_delay_ms"`
	} `mapstructure:"stream"`
	Logger struct {
		Level             string `mapstructure:"level"`
		TimeFieldFormat   string `mapstructure:"time_field_format"`
		PrettyPrint       bool   `mapstructure:"pretty_print"`
		DisableSampling   bool   `mapstructure:"disable_sampling"`
		RedirectStdLogger bool   `mapstructure:"redirect_std_logger"`
		ErrorStack        bool   `mapstructure:"error_stack"`
		ShowCaller        bool   `mapstructure:"show_caller"`
	} `mapstructure:"logger"`
}

func loadConfig() (*Config, error) {
	viper.SetEnvPrefix("RADIO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("http.addr")
	viper.BindEnv("broker.enabled")
	viper.BindEnv("broker.host")
	viper.BindEnv("broker.port")
	viper.BindEnv("broker.state_topic")
	viper.BindEnv("broker.client_id")
	viper.BindEnv("broker.user_name")
	viper.BindEnv("broker.password")
	viper.BindEnv("storage.data_dir")
	viper.BindEnv("storage.fallback_dir")
	viper.BindEnv("gpio.enabled")
	viper.BindEnv("gpio.button_pin")
	viper.BindEnv("gpio.led_pin")
	viper.BindEnv("wifi.enabled")
	viper.BindEnv("wifi.interface")
	viper.BindEnv("wifi.ap_ssid")
	viper.BindEnv("wifi.ap_password")
	viper.BindEnv("logger.level")

	viper.SetDefault("http.addr", ":8080")
	viper.SetDefault("http.debug", false)
	viper.SetDefault("broker.enabled", false)
	viper.SetDefault("broker.port", 1883)
	viper.SetDefault("broker.state_topic", "radio-box/state")
	viper.SetDefault("broker.client_id", "radio-box")
	viper.SetDefault("storage.data_dir", "/var/lib/radio-box")
	viper.SetDefault("storage.fallback_dir", "/tmp/radio-box")
	viper.SetDefault("gpio.enabled", false)
	viper.SetDefault("gpio.button_pin", 17)
	viper.SetDefault("gpio.led_pin", 27)
	viper.SetDefault("wifi.enabled", false)
	viper.SetDefault("wifi.ap_ssid", "radio-box-setup")
	viper.SetDefault("wifi.ap_password", "radiobox")
	viper.SetDefault("loop.tick_ms", 50)
	viper.SetDefault("stream.reconnect_delay_ms", 3000)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.time_field_format", "2006-01-02 15:04:05")
	viper.SetDefault("logger.disable_sampling", true)

	viper.SetConfigName("config")
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
