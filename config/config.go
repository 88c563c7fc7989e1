package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "LOCALMART"

type AuthProvider string

const (
	AuthProviderJWT      AuthProvider = "jwt"
	AuthProviderFirebase AuthProvider = "firebase"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Order    OrderConfig    `mapstructure:"order"`
	Review   ReviewConfig   `mapstructure:"review"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Name         string `mapstructure:"name"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type AuthConfig struct {
	Provider                AuthProvider  `mapstructure:"provider"`
	JWTSecret               string        `mapstructure:"jwt_secret"`
	FirebaseCredentialsFile string        `mapstructure:"firebase_credentials_file"`
	SessionCookie           string        `mapstructure:"session_cookie"`
	GuestCookie             string        `mapstructure:"guest_cookie"`
	SessionTTL              time.Duration `mapstructure:"session_ttl"`
	SecureCookies           bool          `mapstructure:"secure_cookies"`
}

type OrderConfig struct {
	NumberPrefix   string        `mapstructure:"number_prefix"`
	DeliveryWindow time.Duration `mapstructure:"delivery_window"`
}

type ReviewConfig struct {
	MaxRating int `mapstructure:"max_rating"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DSN returns the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.read_timeout", 5*time.Minute)
	v.SetDefault("server.write_timeout", 5*time.Minute)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "local")
	v.SetDefault("database.password", "local")
	v.SetDefault("database.name", "local_mart")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)

	v.SetDefault("auth.provider", string(AuthProviderJWT))
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.firebase_credentials_file", "")
	v.SetDefault("auth.session_cookie", "__session")
	v.SetDefault("auth.guest_cookie", "guest_session")
	v.SetDefault("auth.session_ttl", 5*24*time.Hour)
	v.SetDefault("auth.secure_cookies", false)

	v.SetDefault("order.number_prefix", "ORD")
	v.SetDefault("order.delivery_window", 45*time.Minute)

	v.SetDefault("review.max_rating", 5)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Flags registers the command line flags understood by Load.
func Flags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a config file (yaml, json or toml)")
	fs.String("env-file", ".env", "path to a .env file, ignored when missing")
	fs.String("server.port", "", "HTTP listen port")
	fs.String("log.level", "", "log level (debug, info, warn, error)")
}

// Load builds the configuration from defaults, an optional config file, the
// .env file, LOCALMART_* environment variables and flags, in that order of
// increasing precedence.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	envFile := ".env"
	if fs != nil {
		if f := fs.Lookup("env-file"); f != nil {
			envFile = f.Value.String()
		}
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if f := fs.Lookup("config"); f != nil && f.Value.String() != "" {
			v.SetConfigFile(f.Value.String())
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
		for _, name := range []string{"server.port", "log.level"} {
			if f := fs.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(name, f); err != nil {
					return nil, err
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Server.Port == "" {
		result = multierror.Append(result, errors.New("server.port is required"))
	}
	if c.Database.Host == "" || c.Database.Name == "" {
		result = multierror.Append(result, errors.New("database.host and database.name are required"))
	}
	switch c.Auth.Provider {
	case AuthProviderJWT:
		if len(c.Auth.JWTSecret) < 16 {
			result = multierror.Append(result, errors.New("auth.jwt_secret must be at least 16 characters"))
		}
	case AuthProviderFirebase:
		if c.Auth.FirebaseCredentialsFile == "" {
			result = multierror.Append(result, errors.New("auth.firebase_credentials_file is required for the firebase provider"))
		}
	default:
		result = multierror.Append(result, fmt.Errorf("auth.provider %q is not supported", c.Auth.Provider))
	}
	if c.Auth.SessionTTL <= 0 {
		result = multierror.Append(result, errors.New("auth.session_ttl must be positive"))
	}
	if c.Order.NumberPrefix == "" {
		result = multierror.Append(result, errors.New("order.number_prefix is required"))
	}
	if c.Review.MaxRating < 1 {
		result = multierror.Append(result, errors.New("review.max_rating must be at least 1"))
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		result = multierror.Append(result, fmt.Errorf("log.format %q must be text or json", c.Log.Format))
	}

	return result.ErrorOrNil()
}
