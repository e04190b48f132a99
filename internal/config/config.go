// Package config loads the index configuration once at process start.
//
// Order of precedence (highest to lowest): flags > env > config file > defaults.
// Environment variables use the BUCKET_INDEX prefix with "." replaced by "_",
// e.g. BUCKET_INDEX_STORAGE_BUCKET. The legacy S3_BUCKET_NAME and S3_REGION_NAME
// variables are honoured as well.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Storage providers.
const (
	ProviderMinio = "minio"
	ProviderS3    = "s3"
)

// Config is the root configuration struct.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Index   IndexConfig   `mapstructure:"index"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
}

// StorageConfig describes the bucket being published.
type StorageConfig struct {
	Provider     string `mapstructure:"provider" validate:"required,oneof=minio s3"`
	Bucket       string `mapstructure:"bucket" validate:"required"`
	Region       string `mapstructure:"region" validate:"required"`
	Endpoint     string `mapstructure:"endpoint"`
	AccessKey    string `mapstructure:"access_key"`
	SecretKey    string `mapstructure:"secret_key"`
	SessionToken string `mapstructure:"session_token"`
	UseSSL       *bool  `mapstructure:"use_ssl"`
	MaxKeys      int    `mapstructure:"max_keys" validate:"min=1,max=1000"`
}

// IndexConfig holds listing settings.
type IndexConfig struct {
	// Root is the published root segment, stripped from every user-facing path.
	Root string `mapstructure:"root" validate:"required,excludes=/"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Listen string `mapstructure:"listen" validate:"required"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json console"`
}

var flagToViperKey = map[string]string{
	"listen":   "server.listen",
	"provider": "storage.provider",
	"bucket":   "storage.bucket",
	"region":   "storage.region",
	"endpoint": "storage.endpoint",
}

// envKeys have no default, so they must be bound explicitly for Unmarshal to
// see them. The values list extra variables read by earlier deployments.
var envKeys = map[string][]string{
	"storage.bucket":        {"S3_BUCKET_NAME"},
	"storage.region":        {"S3_REGION_NAME"},
	"storage.endpoint":      nil,
	"storage.access_key":    nil,
	"storage.secret_key":    nil,
	"storage.session_token": nil,
	"storage.use_ssl":       nil,
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		key, ok := flagToViperKey[f.Name]
		if !ok || !f.Changed {
			return
		}
		_ = v.BindPFlag(key, f)
	})
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.provider", ProviderS3)
	v.SetDefault("storage.max_keys", 1000)
	v.SetDefault("index.root", "public")
	v.SetDefault("server.listen", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Flags returns the flag set understood by Load.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("bucket-index", pflag.ContinueOnError)
	fs.String("config", "", "path to a config file")
	fs.String("listen", ":8080", "address the HTTP server listens on")
	fs.String("provider", ProviderS3, "object store provider (minio or s3)")
	fs.String("bucket", "", "bucket to publish")
	fs.String("region", "", "bucket region")
	fs.String("endpoint", "", "object store endpoint (minio only)")
	return fs
}

// Load reads configuration and returns a validated Config.
// configFile may be empty, in which case ./config.yaml is used when present.
// flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix("BUCKET_INDEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range envKeys {
		names := append([]string{key, "BUCKET_INDEX_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}, legacy...)
		_ = v.BindEnv(names...)
	}

	if flags != nil {
		bindFlags(v, flags)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	if cfg.Storage.Provider == ProviderMinio && cfg.Storage.Endpoint == "" {
		return nil, errors.New("validate config: storage.endpoint is required for the minio provider")
	}

	return &cfg, nil
}
