package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/drivemate/kyc-platform/internal/log"
)

// Configuration holds the project configuration
type Configuration struct {
	ServerUrl  string
	ServerPort int
	TmpDir     string    `mapstructure:"TmpDir" tip:"Directory used for transient document downloads"`
	Database   Database  `mapstructure:"Database"`
	Cache      Cache     `mapstructure:"Cache"`
	Provider   Provider  `mapstructure:"Provider"`
	OCR        OCR       `mapstructure:"OCR"`
	Finalizer  Finalizer `mapstructure:"Finalizer"`
	Notifier   Notifier  `mapstructure:"Notifier"`
	Log        Log       `mapstructure:"Log"`
}

// Database has the database configuration
// URL: The database connection string
type Database struct {
	URL string `mapstructure:"Url" tip:"The Datasource name locator"`
}

// Cache configurations
type Cache struct {
	RedisUrl string `mapstructure:"RedisUrl" tip:"The redis url to use as a cache"`
}

// Provider holds the configuration of the backend mediated identity provider
// integration. The backend owns the provider credentials; this service only
// talks to the backend endpoints.
type Provider struct {
	BaseURL         string        `mapstructure:"BaseUrl" tip:"Identity backend base url"`
	ResponseTimeout time.Duration `mapstructure:"ResponseTimeout" tip:"Timeout for identity backend calls"`
}

// OCR holds the configuration of the remote document comparison endpoint
type OCR struct {
	URL             string        `mapstructure:"Url" tip:"Document comparison endpoint"`
	ResponseTimeout time.Duration `mapstructure:"ResponseTimeout" tip:"Timeout for a single document comparison"`
	DownloadTimeout time.Duration `mapstructure:"DownloadTimeout" tip:"Timeout for a single document image download"`
}

// Finalizer holds the configuration of the verification finalization endpoint
type Finalizer struct {
	URL             string        `mapstructure:"Url" tip:"Verification finalization endpoint"`
	ResponseTimeout time.Duration `mapstructure:"ResponseTimeout" tip:"Timeout for the finalization call"`
}

// Notifier holds the push notification gateway configuration
type Notifier struct {
	URL string `mapstructure:"Url" tip:"Push notification gateway endpoint"`
}

// Log holds runtime configurations
//
// Level: The minimum log level to show on logs. Values can be
//
//	 -4: Debug
//		0: Info
//		4: Warning
//		8: Error
//	 The default log level is debug
//
// Mode: Log mode is the format of the log. It can be text or json
// 1: JSON
// 2: Text
// The default log formal is JSON
type Log struct {
	Level int `mapstructure:"Level" tip:"Minimum level to log: (-4:Debug, 0:Info, 4:Warning, 8:Error)"`
	Mode  int `mapstructure:"Mode" tip:"Log format (1: JSON, 2:Structured text)"`
}

// Sanitize perform some basic checks and sanitizations in the configuration.
// Returns nil if config is acceptable, error otherwise.
func (c *Configuration) Sanitize() error {
	sUrl, err := c.validateServerUrl()
	if err != nil {
		return fmt.Errorf("serverUrl is not a valid URL <%s>: %w", c.ServerUrl, err)
	}
	c.ServerUrl = sUrl

	if c.Provider.BaseURL == "" {
		return fmt.Errorf("the identity provider backend url must be provided")
	}
	if c.OCR.URL == "" {
		return fmt.Errorf("the document comparison endpoint must be provided")
	}
	if c.Finalizer.URL == "" {
		return fmt.Errorf("the finalization endpoint must be provided")
	}
	if c.TmpDir == "" {
		c.TmpDir = os.TempDir()
	}

	return nil
}

func (c *Configuration) validateServerUrl() (string, error) {
	sUrl, err := url.ParseRequestURI(c.ServerUrl)
	if err != nil {
		return c.ServerUrl, err
	}
	if sUrl.Scheme == "" {
		return c.ServerUrl, fmt.Errorf("server URL must be an absolute URL")
	}
	sUrl.RawQuery = ""
	return strings.Trim(strings.Trim(sUrl.String(), "/"), "?"), nil
}

// Load loads the configuration from a file
func Load(fileName string) (*Configuration, error) {
	bindEnv()
	pathFlag := viper.GetString("config")
	if _, err := os.Stat(pathFlag); err == nil {
		ext := filepath.Ext(pathFlag)
		if len(ext) > 1 {
			ext = ext[1:]
		}
		name := strings.Split(filepath.Base(pathFlag), ".")[0]
		viper.AddConfigPath(".")
		viper.SetConfigName(name)
		viper.SetConfigType(ext)
	} else {
		viper.AddConfigPath(getWorkingDirectory())
		viper.SetConfigType("toml")
		if fileName == "" {
			viper.SetConfigName("config")
		} else {
			viper.SetConfigName(fileName)
		}
	}

	config := &Configuration{
		Log: Log{
			Level: log.LevelDebug,
			Mode:  log.OutputText,
		},
	}
	ctx := context.Background()
	if err := viper.ReadInConfig(); err != nil {
		log.Info(ctx, "no config file found, relying on env vars")
	}
	if err := viper.Unmarshal(config); err != nil {
		log.Error(ctx, "error unmarshalling config file", "err", err)
	}
	applyDefaults(config)
	return config, nil
}

func applyDefaults(cfg *Configuration) {
	if cfg.ServerPort == 0 {
		cfg.ServerPort = 3001
	}
	if cfg.Provider.ResponseTimeout == 0 {
		cfg.Provider.ResponseTimeout = 30 * time.Second
	}
	if cfg.OCR.ResponseTimeout == 0 {
		cfg.OCR.ResponseTimeout = 60 * time.Second
	}
	if cfg.OCR.DownloadTimeout == 0 {
		cfg.OCR.DownloadTimeout = 30 * time.Second
	}
	if cfg.Finalizer.ResponseTimeout == 0 {
		cfg.Finalizer.ResponseTimeout = 15 * time.Second
	}
}

func bindEnv() {
	viper.SetEnvPrefix("KYC")
	_ = viper.BindEnv("ServerUrl", "KYC_SERVER_URL")
	_ = viper.BindEnv("ServerPort", "KYC_SERVER_PORT")
	_ = viper.BindEnv("TmpDir", "KYC_TMP_DIR")

	_ = viper.BindEnv("Database.URL", "KYC_DATABASE_URL")

	_ = viper.BindEnv("Cache.RedisUrl", "KYC_REDIS_URL")

	_ = viper.BindEnv("Provider.BaseURL", "KYC_PROVIDER_BASE_URL")
	_ = viper.BindEnv("Provider.ResponseTimeout", "KYC_PROVIDER_RESPONSE_TIMEOUT")

	_ = viper.BindEnv("OCR.URL", "KYC_OCR_URL")
	_ = viper.BindEnv("OCR.ResponseTimeout", "KYC_OCR_RESPONSE_TIMEOUT")
	_ = viper.BindEnv("OCR.DownloadTimeout", "KYC_OCR_DOWNLOAD_TIMEOUT")

	_ = viper.BindEnv("Finalizer.URL", "KYC_FINALIZER_URL")
	_ = viper.BindEnv("Finalizer.ResponseTimeout", "KYC_FINALIZER_RESPONSE_TIMEOUT")

	_ = viper.BindEnv("Notifier.URL", "KYC_NOTIFIER_URL")

	_ = viper.BindEnv("Log.Level", "KYC_LOG_LEVEL")
	_ = viper.BindEnv("Log.Mode", "KYC_LOG_MODE")

	viper.AutomaticEnv()
}

func getWorkingDirectory() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
