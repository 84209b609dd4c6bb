package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"shiningstar/internal/app/dsn"

	"github.com/golang-jwt/jwt"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost string
	ServicePort int
	Log         LogConfig
	Storage     StorageConfig
	JWT         JWTConfig
	Redis       RedisConfig
	Minio       MinioConfig
	Pricing     PricingConfig
	Distance    DistanceConfig
	Business    BusinessConfig
	CORS        CORSConfig
}

type LogConfig struct {
	Level  string
	Format string // text или json
}

const (
	StorageDriverPostgres = "postgres"
	StorageDriverFile     = "file"
)

type StorageConfig struct {
	Driver string // postgres или file
	DSN    string
	Path   string // JSON документ для драйвера file
}

type JWTConfig struct {
	Token         string
	ExpiresIn     time.Duration
	SigningMethod jwt.SigningMethod `mapstructure:"-"`
}

type RedisConfig struct {
	Host        string
	Password    string
	Port        int
	User        string
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

// Enabled сообщает, задан ли хост Redis
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func (m MinioConfig) Enabled() bool {
	return m.Endpoint != ""
}

type PricingConfig struct {
	FreeMiles         float64
	VehicleMPG        float64
	GasPricePerGallon float64
	TravelMarkup      float64
	LaborRate         float64
	TaxRate           float64
}

const (
	DistanceModeTable  = "table"
	DistanceModeMatrix = "matrix"

	FallbackReject = "reject"
	FallbackZero   = "zero"
)

type DistanceConfig struct {
	Mode     string // table или matrix
	Origin   string
	Table    map[string]float64
	Endpoint string
	APIKey   string
	Timeout  time.Duration
	Rate     float64 // запросов в секунду к matrix API
	Burst    int
	CacheTTL time.Duration
	Fallback string // reject или zero
}

type BusinessConfig struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

type CORSConfig struct {
	AllowOrigins []string
}

const (
	envRedisHost   = "REDIS_HOST"
	envRedisPort   = "REDIS_PORT"
	envRedisUser   = "REDIS_USER"
	envRedisPass   = "REDIS_PASSWORD"
	envMinioHost   = "MINIO_ENDPOINT"
	envMinioAccess = "MINIO_ACCESS_KEY"
	envMinioSecret = "MINIO_SECRET_KEY"
	envJWTSecret   = "JWT_SECRET"
	envDistanceKey = "DISTANCE_API_KEY"
)

func setDefaults() {
	viper.SetDefault("ServiceHost", "0.0.0.0")
	viper.SetDefault("ServicePort", 8080)
	viper.SetDefault("Log.Level", "info")
	viper.SetDefault("Log.Format", "text")
	viper.SetDefault("Storage.Driver", StorageDriverFile)
	viper.SetDefault("Storage.Path", "data/store.json")
	viper.SetDefault("JWT.Token", "change-me")
	viper.SetDefault("JWT.ExpiresIn", "24h")
	viper.SetDefault("Minio.Bucket", "shiningstar")
	viper.SetDefault("Pricing.FreeMiles", 5)
	viper.SetDefault("Pricing.VehicleMPG", 23)
	viper.SetDefault("Pricing.GasPricePerGallon", 4.0)
	viper.SetDefault("Pricing.TravelMarkup", 1.5)
	viper.SetDefault("Pricing.LaborRate", 25)
	viper.SetDefault("Pricing.TaxRate", 0.08)
	viper.SetDefault("Distance.Mode", DistanceModeTable)
	viper.SetDefault("Distance.Origin", "1650 Woodbourn St, Philadelphia, PA")
	viper.SetDefault("Distance.Timeout", "3s")
	viper.SetDefault("Distance.Rate", 5)
	viper.SetDefault("Distance.Burst", 1)
	viper.SetDefault("Distance.CacheTTL", "168h")
	viper.SetDefault("Distance.Fallback", FallbackReject)
	viper.SetDefault("Business.Name", "Shining Star Cleaning Services")
	viper.SetDefault("Business.Address", "1650 Woodbourn St, Philadelphia, PA")
	viper.SetDefault("Business.Phone", "(215) 555-STAR")
	viper.SetDefault("Business.Email", "info@shiningstar-cleaning.com")
	viper.SetDefault("CORS.AllowOrigins", []string{"*"})
}

func NewConfig() (*Config, error) {
	var err error

	configName := "config"
	_ = godotenv.Load()
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")
	setDefaults()

	err = viper.ReadInConfig()
	if err != nil {
		return nil, err
	}
	viper.WatchConfig()

	cfg := &Config{}
	err = viper.Unmarshal(cfg)
	if err != nil {
		return nil, err
	}

	cfg.JWT.SigningMethod = jwt.SigningMethodHS256
	if secret := os.Getenv(envJWTSecret); secret != "" {
		cfg.JWT.Token = secret
	}

	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = dsn.FromEnv()
	}
	if cfg.Distance.APIKey == "" {
		cfg.Distance.APIKey = os.Getenv(envDistanceKey)
	}

	// redis опционален: без REDIS_HOST logout и кэш расстояний отключены
	cfg.Redis.Host = os.Getenv(envRedisHost)
	if cfg.Redis.Host != "" {
		cfg.Redis.Port, err = strconv.Atoi(os.Getenv(envRedisPort))
		if err != nil {
			return nil, fmt.Errorf("redis port must be int value: %w", err)
		}
	}
	cfg.Redis.Password = os.Getenv(envRedisPass)
	cfg.Redis.User = os.Getenv(envRedisUser)
	cfg.Redis.DialTimeout = 10 * time.Second
	cfg.Redis.ReadTimeout = 10 * time.Second

	if endpoint := os.Getenv(envMinioHost); endpoint != "" {
		cfg.Minio.Endpoint = endpoint
	}
	if access := os.Getenv(envMinioAccess); access != "" {
		cfg.Minio.AccessKey = access
	}
	if secret := os.Getenv(envMinioSecret); secret != "" {
		cfg.Minio.SecretKey = secret
	}

	if err = cfg.validate(); err != nil {
		return nil, err
	}

	log.Info("config parsed")

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageDriverFile:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage path is required for the file driver")
		}
	case StorageDriverPostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage dsn (or DB_HOST) is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	switch c.Distance.Mode {
	case DistanceModeTable, DistanceModeMatrix:
	default:
		return fmt.Errorf("unknown distance mode %q", c.Distance.Mode)
	}
	if c.Distance.Mode == DistanceModeMatrix && c.Distance.Endpoint == "" {
		return fmt.Errorf("distance endpoint is required for matrix mode")
	}

	switch c.Distance.Fallback {
	case FallbackReject, FallbackZero:
	default:
		return fmt.Errorf("unknown distance fallback %q", c.Distance.Fallback)
	}
	return nil
}
