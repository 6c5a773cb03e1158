package config

import (
	"errors"
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `env:"ENV" env-default:"local"`
	LogLevel   string `env:"LOG_LEVEL" env-description:"logging level, debug, info, etc. Empty keeps the ENV default"`
	Mailgun    Mailgun
	TestData   TestData
	Fixtures   Fixtures
	HttpServer HttpServer
	Cache      Cache
	Queue      Queue
}

type Mailgun struct {
	APIKey         string        `env:"MAILGUN_API_KEY" env-required:"true"`
	BaseURL        string        `env:"MAILGUN_BASE_URL" env-default:"https://api.mailgun.net/v3"`
	PageLimit      int           `env:"MAILGUN_PAGE_LIMIT" env-default:"100" env-description:"page size of the mailing list fetch"`
	Timeout        time.Duration `env:"MAILGUN_TIMEOUT" env-default:"0s" env-description:"per request timeout, 0 disables it"`
	RPS            float64       `env:"MAILGUN_RPS" env-default:"0" env-description:"request rate limit, 0 disables it"`
	MaxConcurrency int           `env:"MAILGUN_MAX_CONCURRENCY" env-default:"0" env-description:"parallel requests per operation, 0 is unbounded"`
}

type TestData struct {
	Identifier  string `env:"TEST_IDENTIFIER" env-default:"jane.doe@example.com"`
	MailingList string `env:"TEST_MAILING_LIST" env-default:"newsletter@mg.example.com"`
}

type Fixtures struct {
	Dir string `env:"FIXTURES_DIR" env-description:"directory with recorded <ACTION>.json fixtures, empty hits the live api"`
}

type HttpServer struct {
	Port        string        `env:"HTTP_PORT" env-default:"8080"`
	Timeout     time.Duration `env:"HTTP_TIMEOUT" env-default:"30s"`
	IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type Cache struct {
	Type  string `env:"REDIS_TYPE" env-default:"redis" env-description:"specifies provider, one of redis/redisCluster"`
	Redis struct {
		Address  string `env:"REDIS_ADDR" env-default:"localhost:6379" env-description:"redis host:port single instance"`
		Password string `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize int    `env:"REDIS_POOL_SIZE" env-default:"20" env-description:"max tcp connections pool size"`
	}
	RedisCluster struct {
		Addresses []string `env:"REDIS_CLUSTER_ADDRS" env-default:"" env-description:"redis cluster nodes: ['172.27.29.90:7000','172.27.29.91:7001']"`
		Password  string   `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize  int      `env:"REDIS_POOL_SIZE" env-default:"20" env-description:"max tcp connections pool size"`
	}
}

type Queue struct {
	Concurrency int `env:"QUEUE_CONCURRENCY" env-default:"5"`
	MaxRetry    int `env:"QUEUE_MAX_RETRY" env-default:"0" env-description:"asynq retries of a failed request, 0 keeps provider failures terminal"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}

	if cfg.Mailgun.APIKey == "" {
		return nil, errors.New("MAILGUN_API_KEY must not be empty")
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config from environment: %s", err)
	}

	return cfg
}
