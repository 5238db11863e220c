package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const envPrefix = "PLAYDEN_"

// Load reads the toml file at path after loading the optional .env file of the
// working directory. Secrets can be overridden by PLAYDEN_* env variables.
func Load(path string) (Configs, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Configs{}, err
	}

	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, err
		}
	}

	overrideString(&cfg.Env, "ENV")
	overrideString(&cfg.Database.Driver, "DB_DRIVER")
	overrideString(&cfg.Database.Host, "DB_HOST")
	overrideString(&cfg.Database.Port, "DB_PORT")
	overrideString(&cfg.Database.Database, "DB_NAME")
	overrideString(&cfg.Database.User, "DB_USER")
	overrideString(&cfg.Database.Password, "DB_PASSWORD")
	overrideString(&cfg.Auth.TokenSecret, "TOKEN_SECRET")
	overrideString(&cfg.Redis.Addr, "REDIS_ADDR")
	overrideString(&cfg.Kafka.Addr, "KAFKA_ADDR")
	overrideString(&cfg.Storage.AccessKey, "S3_ACCESS_KEY")
	overrideString(&cfg.Storage.SecretKey, "S3_SECRET_KEY")
	overrideString(&cfg.Catalog.ClientID, "CATALOG_CLIENT_ID")
	overrideString(&cfg.Catalog.ClientSecret, "CATALOG_CLIENT_SECRET")

	return cfg, nil
}

// Default returns the configurations used when a field is not in the file.
func Default() Configs {
	return Configs{
		Env:      "local",
		LogLevel: "info",
		Database: DatabaseConfigs{
			Driver:       "mysql",
			Host:         "localhost",
			Port:         "3306",
			Database:     "playden",
			User:         "root",
			MaxOpenConns: 20,
			MaxIdleConns: 5,
		},
		ApiServer: APIServerConfigs{
			ServerConfigs: ServerConfigs{Port: "8080"},
			MaxLimit:      50,
			DefaultLimit:  20,
		},
		Auth: AuthConfigs{
			AccessToken: TokenConfigs{
				Name:       "access_token",
				Expiration: Duration{24 * time.Hour},
			},
			LoginRate:  1,
			LoginBurst: 5,
		},
		File: FileConfigs{MaxSize: 2 * 1024 * 1024},
		Kafka: KafkaConfigs{
			GroupID: "playden",
		},
		Catalog: CatalogConfigs{
			APIEndpoints:      []string{"https://api.igdb.com/v4"},
			TokenEndpoints:    []string{"https://id.twitch.tv"},
			RequestsPerSecond: 4,
			CacheTTL:          Duration{6 * time.Hour},
		},
		Achievement: AchievementConfigs{
			Topic: "relation_count",
		},
	}
}

func overrideString(field *string, name string) {
	if value, ok := os.LookupEnv(envPrefix + name); ok {
		*field = strings.TrimSpace(value)
	}
}
