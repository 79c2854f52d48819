package config

import (
	"errors"
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

// Duration lets yaml carry values like "1h"; yaml.v2 has no native
// time.Duration support.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := unmarshal(&n); err != nil {
		return err
	}
	*d = Duration(n)
	return nil
}

type Public struct {
	Addr          string   `yaml:"addr"`
	JwtTTL        Duration `yaml:"jwt_ttl"`
	LogLevel      string   `yaml:"log_level"`
	LogJSON       bool     `yaml:"log_json"`
	CorsOrigins   []string `yaml:"cors_origins"`
	MaxImages     int      `yaml:"max_images"`      // uploaded files per listing
	MaxUploadSize int64    `yaml:"max_upload_size"` // bytes, whole multipart body
	AllowedMimes  []string `yaml:"allowed_mimes"`
	S3            S3       `yaml:"s3"`
}

type Private struct {
	JwtKey string `yaml:"jwt_key"`
	Pg     Pg     `yaml:"pg"`
	S3Auth S3Auth `yaml:"s3_auth"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type S3 struct {
	Region       string `yaml:"region"`
	Bucket       string `yaml:"bucket"`
	BaseEndpoint string `yaml:"base_endpoint"`
	PublicURL    string `yaml:"public_url"` // prefix for returned object URLs
}

type S3Auth struct {
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return time.Duration(c.Public.JwtTTL)
}

// Validate checks the invariants the process cannot start without.
// The signing key is deliberately not defaulted: serving with an empty
// key would make every issued token forgeable.
func (c *Config) Validate() error {
	if c.Private.JwtKey == "" {
		return errors.New("jwt_key is not set")
	}
	return nil
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	if cfg.Public.JwtTTL == 0 {
		cfg.Public.JwtTTL = Duration(time.Hour)
	}
	if cfg.Public.MaxImages == 0 {
		cfg.Public.MaxImages = 10
	}
	if cfg.Public.MaxUploadSize == 0 {
		cfg.Public.MaxUploadSize = 32 << 20
	}
	return cfg
}
