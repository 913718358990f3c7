package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	OSS      OSSConfig      `mapstructure:"oss"`
	Payment  PaymentConfig  `mapstructure:"payment"`
	Esign    EsignConfig    `mapstructure:"esign"`
	Email    EmailConfig    `mapstructure:"email"`
	Queue    QueueConfig    `mapstructure:"queue"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Tiers    TierConfig     `mapstructure:"tiers"`
	Upload   UploadConfig   `mapstructure:"upload"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	BucketName      string `mapstructure:"bucket_name"`
	CDNDomain       string `mapstructure:"cdn_domain"`
}

type PaymentConfig struct {
	SecretKey string `mapstructure:"secret_key"`
	BaseURL   string `mapstructure:"base_url"`
	Currency  string `mapstructure:"currency"`
}

type EsignConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

type EmailConfig struct {
	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort int    `mapstructure:"smtp_port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	BaseURL  string `mapstructure:"base_url"` // public site URL used in signer links
}

type QueueConfig struct {
	AgreementQueue string `mapstructure:"agreement_queue"`
	MaxWorkers     int    `mapstructure:"max_workers"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

// TierConfig holds the subscription plan catalog.
type TierConfig struct {
	Levels map[string]TierLevel `mapstructure:"levels"`
}

type TierLevel struct {
	MonthlyLiveQuota int `mapstructure:"monthly_live_quota"`
	MonthlyPrice     int `mapstructure:"monthly_price"` // cents
}

type UploadConfig struct {
	MaxSize           int64    `mapstructure:"max_size"`
	TempDir           string   `mapstructure:"temp_dir"`
	ExpireHours       int      `mapstructure:"expire_hours"`
	AllowedExtensions []string `mapstructure:"allowed_extensions"`
}

// DefaultTiers is the built-in plan catalog, used when the config file does
// not override it. A user's live_quota is a snapshot taken at subscription
// time, so changing these values never silently alters existing users.
func DefaultTiers() TierConfig {
	return TierConfig{
		Levels: map[string]TierLevel{
			"free":       {MonthlyLiveQuota: 0, MonthlyPrice: 0},
			"pro":        {MonthlyLiveQuota: 30, MonthlyPrice: 4900},
			"enterprise": {MonthlyLiveQuota: 100, MonthlyPrice: 14900},
		},
	}
}

func Load(configPath string) (*Config, error) {
	// Prefer config.local.yaml when present (real keys, not committed to git).
	dir := filepath.Dir(configPath)
	localConfigPath := filepath.Join(dir, "config.local.yaml")

	if _, err := os.Stat(localConfigPath); err == nil {
		configPath = localConfigPath
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// Environment variable overrides
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if len(cfg.Tiers.Levels) == 0 {
		cfg.Tiers = DefaultTiers()
	}

	return &cfg, nil
}
