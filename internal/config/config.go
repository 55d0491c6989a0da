package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env   string      `yaml:"env" env-default:"local"`
	DSN   string      `yaml:"dsn" env:"DSN" env-required:"true"`
	HTTP  HTTPConfig  `yaml:"http"`
	Token TokenConfig `yaml:"token"`
	Admin AdminConfig `yaml:"admin"`
	S3    S3Config    `yaml:"s3"`
	SMTP  SMTPConfig  `yaml:"smtp"`
	Redis RedisConfig `yaml:"redis"`
}

type HTTPConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port" env-default:"8080"`
}

type TokenConfig struct {
	Secret     string        `yaml:"secret" env:"TOKEN_SECRET" env-required:"true"`
	TTL        time.Duration `yaml:"ttl" env-default:"1h"`
	RefreshTTL time.Duration `yaml:"refresh_ttl" env-default:"720h"`
}

type AdminConfig struct {
	Email    string `yaml:"email" env:"ADMIN_EMAIL" env-required:"true"`
	Password string `yaml:"password" env:"ADMIN_PASSWORD" env-required:"true"`
}

type S3Config struct {
	Endpoint        string `yaml:"endpoint" env:"S3_ENDPOINT"`
	AccessKey       string `yaml:"access_key" env:"S3_ACCESS_KEY"`
	SecretKey       string `yaml:"secret_key" env:"S3_SECRET_KEY"`
	Bucket          string `yaml:"bucket" env:"S3_BUCKET"`
	UseSSL          bool   `yaml:"use_ssl" env-default:"true"`
	FriendlyURLBase string `yaml:"friendly_url_base" env:"S3_FRIENDLY_URL_BASE"`
	ThumbSize       int    `yaml:"thumb_size" env-default:"300"`
}

type SMTPConfig struct {
	Host        string        `yaml:"host" env:"SMTP_HOST"`
	Port        int           `yaml:"port" env-default:"587"`
	Username    string        `yaml:"username" env:"SMTP_USERNAME"`
	Password    string        `yaml:"password" env:"SMTP_PASSWORD"`
	From        string        `yaml:"from"`
	MailRetries int           `yaml:"mail_retries" env-default:"3"`
	MailDelay   time.Duration `yaml:"mail_delay" env-default:"5s"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env-default:"0"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
