package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Cache      CacheConfig
	Log        LogConfig
	Auth       AuthConfig
	Map        MapConfig
	TileServer TileServerConfig
	Meta       MetaConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	WaypointsCacheTTL time.Duration
	ClustersCacheTTL  time.Duration
}

type LogConfig struct {
	Level string
}

// AuthConfig — настройки пользовательских сессий и сервисного API-токена.
type AuthConfig struct {
	JWTSecret  string
	SessionTTL time.Duration
	APIToken   string
}

// MapConfig — параметры карты: дефолтный viewport и настройки кластеризации.
type MapConfig struct {
	DefaultLat       float64
	DefaultLng       float64
	DefaultZoom      float64
	RestoreZoom      float64
	FlyZoom          float64
	ClusterRadius    float64
	ClusterMaxZoom   int
	ClusterExtent    float64
	ContributionXP   int
	LegacyFalsyPatch bool
}

type TileServerConfig struct {
	BaseURL        string
	RequestTimeout int
}

// MetaConfig — метаданные приложения для эндпоинта /meta.
type MetaConfig struct {
	Version string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			WaypointsCacheTTL: time.Duration(viper.GetInt("WAYPOINTS_CACHE_TTL")) * time.Second,
			ClustersCacheTTL:  time.Duration(viper.GetInt("CLUSTERS_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Auth: AuthConfig{
			JWTSecret:  viper.GetString("JWT_SECRET"),
			SessionTTL: time.Duration(viper.GetInt("SESSION_TTL")) * time.Second,
			APIToken:   viper.GetString("BUBBLY_API_TOKEN"),
		},
		Map: MapConfig{
			DefaultLat:       viper.GetFloat64("MAP_DEFAULT_LAT"),
			DefaultLng:       viper.GetFloat64("MAP_DEFAULT_LNG"),
			DefaultZoom:      viper.GetFloat64("MAP_DEFAULT_ZOOM"),
			RestoreZoom:      viper.GetFloat64("MAP_RESTORE_ZOOM"),
			FlyZoom:          viper.GetFloat64("MAP_FLY_ZOOM"),
			ClusterRadius:    viper.GetFloat64("MAP_CLUSTER_RADIUS"),
			ClusterMaxZoom:   viper.GetInt("MAP_CLUSTER_MAX_ZOOM"),
			ClusterExtent:    viper.GetFloat64("MAP_CLUSTER_EXTENT"),
			ContributionXP:   viper.GetInt("CONTRIBUTION_XP"),
			LegacyFalsyPatch: viper.GetBool("PROFILE_LEGACY_FALSY_PATCH"),
		},
		TileServer: TileServerConfig{
			BaseURL:        viper.GetString("TILE_SERVER_URL"),
			RequestTimeout: viper.GetInt("TILE_SERVER_TIMEOUT"),
		},
		Meta: MetaConfig{
			Version: viper.GetString("BUBBLY_APP_VERSION"),
		},
	}

	// Set default values if not provided
	if cfg.Map.DefaultZoom == 0 {
		cfg.Map.DefaultZoom = 1
	}
	if cfg.Map.RestoreZoom == 0 {
		cfg.Map.RestoreZoom = 14
	}
	if cfg.Map.FlyZoom == 0 {
		cfg.Map.FlyZoom = 14
	}
	if cfg.Map.ClusterRadius == 0 {
		cfg.Map.ClusterRadius = 50
	}
	if cfg.Map.ClusterMaxZoom == 0 {
		cfg.Map.ClusterMaxZoom = 14
	}
	if cfg.Map.ClusterExtent == 0 {
		cfg.Map.ClusterExtent = 512
	}
	if cfg.Map.ContributionXP == 0 {
		cfg.Map.ContributionXP = 10
	}
	if !viper.IsSet("PROFILE_LEGACY_FALSY_PATCH") {
		cfg.Map.LegacyFalsyPatch = true
	}
	if cfg.Cache.WaypointsCacheTTL == 0 {
		cfg.Cache.WaypointsCacheTTL = 60 * time.Second
	}
	if cfg.Cache.ClustersCacheTTL == 0 {
		cfg.Cache.ClustersCacheTTL = 30 * time.Second
	}
	if cfg.Auth.SessionTTL == 0 {
		cfg.Auth.SessionTTL = 30 * 24 * time.Hour
	}
	if cfg.TileServer.BaseURL == "" {
		cfg.TileServer.BaseURL = "https://tiles.linus.id.au"
	}
	if cfg.TileServer.RequestTimeout == 0 {
		cfg.TileServer.RequestTimeout = 10
	}
	if cfg.Meta.Version == "" {
		cfg.Meta.Version = "dev"
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
