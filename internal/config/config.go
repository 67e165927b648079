package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/vendormap-service/internal/domain"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Data     DataConfig
	Grid     GridConfig
	Cities   map[string]CityConfig
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
	CoverageGridTTL time.Duration
	InitialDataTTL  time.Duration
}

type LogConfig struct {
	Level string
}

// DataConfig - расположение файлов справочной геометрии
type DataConfig struct {
	// MarketingAreasDir содержит <city>_polygons.csv с колонками name,WKT
	MarketingAreasDir string
	// DistrictsDir содержит GeoJSON районов Тегерана
	DistrictsDir string
}

// GridConfig - параметры сетки покрытия
type GridConfig struct {
	CellSizeMeters float64
}

// CityConfig - справочные параметры города: идентификатор, границы
// для генерации сетки и опорная широта для пересчета метров в градусы
type CityConfig struct {
	ID     int
	Bounds domain.BoundingBox
	RefLat float64
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
			CoverageGridTTL: time.Duration(viper.GetInt("COVERAGE_GRID_CACHE_TTL")) * time.Second,
			InitialDataTTL:  time.Duration(viper.GetInt("INITIAL_DATA_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Data: DataConfig{
			MarketingAreasDir: viper.GetString("MARKETING_AREAS_DIR"),
			DistrictsDir:      viper.GetString("DISTRICTS_DIR"),
		},
		Grid: GridConfig{
			CellSizeMeters: viper.GetFloat64("GRID_CELL_SIZE_METERS"),
		},
		Cities: defaultCities(),
	}

	// Set default values if not provided
	if cfg.Cache.CoverageGridTTL == 0 {
		cfg.Cache.CoverageGridTTL = 15 * time.Minute
	}
	if cfg.Cache.InitialDataTTL == 0 {
		cfg.Cache.InitialDataTTL = time.Hour
	}
	if cfg.Data.MarketingAreasDir == "" {
		cfg.Data.MarketingAreasDir = "./data/polygons/tapsifood_marketing_areas"
	}
	if cfg.Data.DistrictsDir == "" {
		cfg.Data.DistrictsDir = "./data/polygons/tehran_districts"
	}
	if cfg.Grid.CellSizeMeters == 0 {
		cfg.Grid.CellSizeMeters = 200
	}

	return cfg, nil
}

// defaultCities возвращает справочник обслуживаемых городов.
// Границы приблизительные, используются только для генерации сетки покрытия.
func defaultCities() map[string]CityConfig {
	return map[string]CityConfig{
		"tehran": {
			ID:     2,
			Bounds: domain.BoundingBox{MinLat: 35.5, MaxLat: 35.85, MinLng: 51.1, MaxLng: 51.7},
			RefLat: 35.7,
		},
		"mashhad": {
			ID:     1,
			Bounds: domain.BoundingBox{MinLat: 36.15, MaxLat: 36.45, MinLng: 59.35, MaxLng: 59.8},
			RefLat: 36.3,
		},
		"shiraz": {
			ID:     5,
			Bounds: domain.BoundingBox{MinLat: 29.5, MaxLat: 29.75, MinLng: 52.4, MaxLng: 52.7},
			RefLat: 29.6,
		},
	}
}

// CityIDMap возвращает соответствие id -> имя города
func (c *Config) CityIDMap() map[int]string {
	m := make(map[int]string, len(c.Cities))
	for name, city := range c.Cities {
		m[city.ID] = name
	}
	return m
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
