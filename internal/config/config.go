package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port        int    `yaml:"port"`
	GinMode     string `yaml:"gin_mode"`
	Environment string `yaml:"environment"`
	BasePath    string `yaml:"base_path"`
	// RequestTimeout bounds every request's store and cache calls
	RequestTimeout string `yaml:"request_timeout"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	AccessSecret  string `yaml:"access_secret"`
	RefreshSecret string `yaml:"refresh_secret"`
	Issuer        string `yaml:"issuer"`
	AccessTTL     string `yaml:"access_ttl"`
	RefreshTTL    string `yaml:"refresh_ttl"`
}

type ActivationConfig struct {
	Secret  string `yaml:"secret"`
	TTL     string `yaml:"ttl"`
	CodeMin int    `yaml:"code_min"`
	CodeMax int    `yaml:"code_max"`
}

type CookieConfig struct {
	SameSite    string `yaml:"same_site"`
	Domain      string `yaml:"domain"`
	AccessName  string `yaml:"access_name"`
	RefreshName string `yaml:"refresh_name"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type AuthConfig struct {
	BcryptCost      int  `yaml:"bcrypt_cost"`
	RequireVerified bool `yaml:"require_verified"`
}

type ConfigFile struct {
	App        AppConfig        `yaml:"app"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	JWT        JWTConfig        `yaml:"jwt"`
	Activation ActivationConfig `yaml:"activation"`
	Cookie     CookieConfig     `yaml:"cookie"`
	SMTP       SMTPConfig       `yaml:"smtp"`
	Auth       AuthConfig       `yaml:"auth"`
}

type Config struct {
	Port           string
	GinMode        string
	Environment    string
	BasePath       string
	RequestTimeout time.Duration

	DSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AccessSecret  string
	RefreshSecret string
	JWTIssuer     string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	ActivationSecret string
	ActivationTTL    time.Duration
	CodeMin          int
	CodeMax          int

	CookieSameSite string
	CookieDomain   string
	AccessCookie   string
	RefreshCookie  string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	BcryptCost      int
	RequireVerified bool
}

// DefaultConfigPath is read when no path is given
const DefaultConfigPath = "config/config.yml"

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads .env, the YAML config file at path and environment overrides, in that order.
// Missing files are not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if path == "" {
		path = DefaultConfigPath
	}
	file, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	cfg, err := fromFile(file)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	var file ConfigFile
	bytes, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &file, nil
		}
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}
	if err := yaml.Unmarshal(bytes, &file); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}
	return &file, nil
}

func fromFile(f *ConfigFile) (*Config, error) {
	accTTL, err := parseDuration(f.JWT.AccessTTL, 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}
	refTTL, err := parseDuration(f.JWT.RefreshTTL, 72*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}
	actTTL, err := parseDuration(f.Activation.TTL, 60*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid activation TTL: %w", err)
	}

	reqTimeout, err := parseDuration(f.App.RequestTimeout, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid request timeout: %w", err)
	}

	port := f.App.Port
	if port == 0 {
		port = 8000
	}

	return &Config{
		Port:             strconv.Itoa(port),
		GinMode:          orDefault(f.App.GinMode, "release"),
		Environment:      orDefault(f.App.Environment, "development"),
		BasePath:         orDefault(f.App.BasePath, "/api/v1"),
		RequestTimeout:   reqTimeout,
		DSN:              f.Database.DSN,
		RedisAddr:        orDefault(f.Redis.Addr, "localhost:6379"),
		RedisPassword:    f.Redis.Password,
		RedisDB:          f.Redis.DB,
		AccessSecret:     f.JWT.AccessSecret,
		RefreshSecret:    f.JWT.RefreshSecret,
		JWTIssuer:        orDefault(f.JWT.Issuer, "elearnauth"),
		AccessTTL:        accTTL,
		RefreshTTL:       refTTL,
		ActivationSecret: f.Activation.Secret,
		ActivationTTL:    actTTL,
		CodeMin:          intOrDefault(f.Activation.CodeMin, 1000),
		CodeMax:          intOrDefault(f.Activation.CodeMax, 9999),
		CookieSameSite:   orDefault(f.Cookie.SameSite, "none"),
		CookieDomain:     f.Cookie.Domain,
		AccessCookie:     orDefault(f.Cookie.AccessName, "access_token"),
		RefreshCookie:    orDefault(f.Cookie.RefreshName, "refresh_token"),
		SMTPHost:         f.SMTP.Host,
		SMTPPort:         intOrDefault(f.SMTP.Port, 587),
		SMTPUser:         f.SMTP.Username,
		SMTPPassword:     f.SMTP.Password,
		SMTPFrom:         f.SMTP.From,
		BcryptCost:       intOrDefault(f.Auth.BcryptCost, 10),
		RequireVerified:  f.Auth.RequireVerified,
	}, nil
}

func (c *Config) applyEnv() error {
	c.Port = env("PORT", c.Port)
	c.Environment = env("APP_ENV", env("NODE_ENV", c.Environment))
	c.DSN = env("DATABASE_DSN", c.DSN)
	c.RedisAddr = env("REDIS_ADDR", c.RedisAddr)
	c.RedisPassword = env("REDIS_PASSWORD", c.RedisPassword)
	c.AccessSecret = env("ACCESS_TOKEN_SECRET", c.AccessSecret)
	c.RefreshSecret = env("REFRESH_TOKEN_SECRET", c.RefreshSecret)
	c.ActivationSecret = env("ACTIVATION_SECRET", c.ActivationSecret)
	c.SMTPHost = env("SMTP_HOST", c.SMTPHost)
	c.SMTPUser = env("SMTP_USER", c.SMTPUser)
	c.SMTPPassword = env("SMTP_PASSWORD", c.SMTPPassword)
	c.SMTPFrom = env("SMTP_FROM", env("SMTP_USER", c.SMTPFrom))

	var err error
	if c.RedisDB, err = envInt("REDIS_DB", c.RedisDB); err != nil {
		return err
	}
	if c.SMTPPort, err = envInt("SMTP_PORT", c.SMTPPort); err != nil {
		return err
	}
	if c.AccessTTL, err = envDays("ACCESS_TOKEN_EXPIRE", c.AccessTTL); err != nil {
		return err
	}
	if c.RefreshTTL, err = envDays("REFRESH_TOKEN_EXPIRE", c.RefreshTTL); err != nil {
		return err
	}
	return nil
}

// Validate rejects configurations that would make the auth core unsafe to run
func (c *Config) Validate() error {
	switch {
	case c.AccessSecret == "":
		return errors.New("access token secret is required")
	case c.RefreshSecret == "":
		return errors.New("refresh token secret is required")
	case c.ActivationSecret == "":
		return errors.New("activation secret is required")
	case c.AccessTTL <= 0 || c.RefreshTTL <= 0 || c.ActivationTTL <= 0:
		return errors.New("token lifetimes must be positive")
	case c.RequestTimeout <= 0:
		return errors.New("request timeout must be positive")
	case c.CodeMin < 0 || c.CodeMax <= c.CodeMin:
		return fmt.Errorf("invalid activation code range [%d, %d]", c.CodeMin, c.CodeMax)
	}
	switch c.CookieSameSite {
	case "strict", "lax", "none":
	default:
		return fmt.Errorf("invalid cookie same_site %q", c.CookieSameSite)
	}
	return nil
}

// Production reports whether cookies must carry the Secure attribute
func (c *Config) Production() bool {
	return c.Environment == "production"
}

func parseDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", k, err)
	}
	return n, nil
}

func envDays(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	days, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", k, err)
	}
	return time.Duration(days) * 24 * time.Hour, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func intOrDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
