package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env   string      `yaml:"env" env:"ENV" env-default:"local"`
	HTTP  HTTPConfig  `yaml:"http"`
	CORS  CORSConfig  `yaml:"cors"`
	Rooms RoomsConfig `yaml:"rooms"`
}

type HTTPConfig struct {
	Address string `yaml:"address" env:"HTTP_ADDRESS" env-default:""`
}

type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins" env-default:""`
}

// RoomsConfig carries the presence and reaping tunables. The 5s defaults
// match the historical behavior; they are configuration, not contract.
type RoomsConfig struct {
	ActiveWindow time.Duration `yaml:"active_window" env:"ROOMS_ACTIVE_WINDOW" env-default:"5s"`
	ReapInterval time.Duration `yaml:"reap_interval" env:"ROOMS_REAP_INTERVAL" env-default:"5s"`
	EmptyGrace   time.Duration `yaml:"empty_grace" env:"ROOMS_EMPTY_GRACE" env-default:"5s"`
	WatchPush    time.Duration `yaml:"watch_push" env:"ROOMS_WATCH_PUSH" env-default:"2s"`
}

func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		panic("config path is empty")
	}

	return MustLoadPath(configPath)
}

func MustLoadPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	cfg.setDefaults()

	return &cfg
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	if res == "" {
		res = "config/local.yaml"
	}

	return res
}

func (c *Config) setDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":5000"
	}
	if len(c.CORS.AllowOrigins) == 0 {
		c.CORS.AllowOrigins = []string{"http://localhost:3000"}
	}
	if c.Rooms.ActiveWindow <= 0 {
		c.Rooms.ActiveWindow = 5 * time.Second
	}
	if c.Rooms.ReapInterval <= 0 {
		c.Rooms.ReapInterval = 5 * time.Second
	}
	if c.Rooms.EmptyGrace <= 0 {
		c.Rooms.EmptyGrace = 5 * time.Second
	}
	if c.Rooms.WatchPush <= 0 {
		c.Rooms.WatchPush = 2 * time.Second
	}
}
