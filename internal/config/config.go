package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost:6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:""`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s/%d", r.Username, r.Password, r.Host, r.DB)
}

// DraftConfig controls the autosave lifecycle. SaveDelay is the trailing-edge
// debounce window; edits closer together than this collapse into one save.
type DraftConfig struct {
	SaveDelay time.Duration `yaml:"SAVE_DELAY" env:"DRAFT_SAVE_DELAY" env-default:"500ms"`
	TTL       time.Duration `yaml:"TTL" env:"DRAFT_TTL" env-default:"168h"`
}

type Catalog struct {
	BaseURL string        `yaml:"CATALOG_BASE_URL" env:"CATALOG_BASE_URL" env-default:"https://app.tablecrm.com/api/v1/nomenclature/"`
	Token   string        `yaml:"CATALOG_TOKEN" env:"CATALOG_TOKEN" env-required:"true"`
	Timeout time.Duration `yaml:"CATALOG_TIMEOUT" env:"CATALOG_TIMEOUT" env-default:"15s"`
}

type AI struct {
	BaseURL string        `yaml:"AI_BASE_URL" env:"AI_BASE_URL" env-required:"true"`
	APIKey  string        `yaml:"AI_API_KEY" env:"AI_API_KEY" env-default:""`
	Timeout time.Duration `yaml:"AI_TIMEOUT" env:"AI_TIMEOUT" env-default:"60s"`
}

type Address struct {
	BaseURL   string        `yaml:"ADDRESS_BASE_URL" env:"ADDRESS_BASE_URL" env-default:"https://nominatim.openstreetmap.org"`
	UserAgent string        `yaml:"ADDRESS_USER_AGENT" env:"ADDRESS_USER_AGENT" env-default:"cardcomposer/1.0"`
	Timeout   time.Duration `yaml:"ADDRESS_TIMEOUT" env:"ADDRESS_TIMEOUT" env-default:"10s"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-default:"production"`
	HTTPServer   `yaml:"http_server"`
	RedisConnect RedisConnect `yaml:"redis"`
	Draft        DraftConfig  `yaml:"draft"`
	Catalog      Catalog      `yaml:"catalog"`
	AI           AI           `yaml:"ai"`
	Address      Address      `yaml:"address"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			log.Fatal("Config path is not set")
		}

	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	err := cleanenv.ReadConfig(configPath, &cfg)

	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return &cfg

}
