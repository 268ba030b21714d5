package config

import (
	"pulse360/internal/logger"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Environment          string
	ServerPort           int
	DatabaseDbPath       string
	DatabaseCacheAddress string
	DatabaseCachePort    int
	UploadTempDir        string
}

func InitConfig() (Config, error) {
	log := logger.New("config").Function("InitConfig")

	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DATABASE_DB_PATH", "data/pulse360.db")
	viper.SetDefault("DATABASE_CACHE_ADDRESS", "localhost")
	viper.SetDefault("DATABASE_CACHE_PORT", 6379)
	viper.SetDefault("UPLOAD_TEMP_DIR", "/tmp/pulse360_uploads")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional, env vars and defaults cover everything
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, log.Err("failed to read config file", err)
		}
	}

	config := Config{
		Environment:          viper.GetString("ENVIRONMENT"),
		ServerPort:           viper.GetInt("SERVER_PORT"),
		DatabaseDbPath:       viper.GetString("DATABASE_DB_PATH"),
		DatabaseCacheAddress: viper.GetString("DATABASE_CACHE_ADDRESS"),
		DatabaseCachePort:    viper.GetInt("DATABASE_CACHE_PORT"),
		UploadTempDir:        viper.GetString("UPLOAD_TEMP_DIR"),
	}

	log.Info("config initialized", "environment", config.Environment)
	return config, nil
}
