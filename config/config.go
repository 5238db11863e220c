package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env      string
	LogLevel string

	Database    DatabaseConfigs
	ApiServer   APIServerConfigs
	Auth        AuthConfigs
	Storage     S3Configs
	File        FileConfigs
	Redis       RedisConfigs
	Kafka       KafkaConfigs
	Catalog     CatalogConfigs
	Achievement AchievementConfigs
	Search      SearchConfigs
}

type DatabaseConfigs struct {
	// Driver is one of mysql, postgres or sqlite.
	Driver   string
	Host     string
	Port     string
	Database string
	User     string
	Password string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime Duration
}

func (d DatabaseConfigs) ConnectionString() string {
	switch d.Driver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			d.Host,
			d.Port,
			d.User,
			d.Password,
			d.Database,
		)
	case "sqlite":
		return d.Database
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			d.User,
			d.Password,
			d.Host,
			d.Port,
			d.Database,
		)
	}
}

type APIServerConfigs struct {
	ServerConfigs

	MaxLimit     int
	DefaultLimit int

	AllowedOrigins []string
}

type ServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs

	// LoginRate is the number of login attempts allowed per second for a
	// single client address, LoginBurst is the bucket size.
	LoginRate  float64
	LoginBurst int
}

type TokenConfigs struct {
	Name       string
	Expiration Duration
}

type S3Configs struct {
	Region         string
	Endpoint       string
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	SSLDisabled    bool
	Bucket         string
}

type FileConfigs struct {
	MaxSize int64
}

type RedisConfigs struct {
	Addr string
}

type KafkaConfigs struct {
	Addr    string
	GroupID string
}

type CatalogConfigs struct {
	APIEndpoints   []string
	TokenEndpoints []string
	ClientID       string
	ClientSecret   string

	// RequestsPerSecond is the throttle applied on every catalog call.
	RequestsPerSecond float64
	CacheTTL          Duration
}

type AchievementConfigs struct {
	// Async moves achievement unlocking from the request to the achievement
	// subscriber through kafka.
	Async bool
	Topic string
}

type SearchConfigs struct {
	// IndexDir is the directory of bleve indexes, an empty value keeps all
	// indexes in memory.
	IndexDir string
}

// Duration is a time.Duration which can be decoded from a toml string like
// "15m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
