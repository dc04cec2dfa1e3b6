package server

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"todoapp/internal/domain/errors"
)

type Config struct {
	Addr        string
	Port        int
	DBStr       string
	MigratePath string
	JWTSecret   string
	TokenTTL    time.Duration
}

const (
	defaultAddr        = "0.0.0.0"
	defaultPort        = 8080
	defaultDBStr       = "postgresql://shouldbeinVaultuser:shouldbeinVaultpassword@db:5432/todo?sslmode=disable"
	defaultMigratePath = "migrations"
	defaultJWTSecret   = "shouldbeinVaultsecret"
	defaultTokenTTL    = 24 * time.Hour
)

var (
	addr        = flag.String("addr", defaultAddr, "адрес сервера (по умолчанию 0.0.0.0)")
	port        = flag.Int("port", defaultPort, "порт сервера (по умолчанию 8080)")
	dbstr       = flag.String("dbstr", "", "строка подключения к БД")
	migratePath = flag.String("migratepath", defaultMigratePath, "путь к папке с миграциями")
	jwtSecret   = flag.String("jwtsecret", "", "секрет для подписи JWT")
	configFile  = flag.String("c", "", "путь к файлу конфигурации JSON")
	parsed      = false
)

// ReadConfig layers a JSON file, environment variables and flags; later
// layers win.
func ReadConfig() *Config {
	if !parsed {
		flag.Parse()
		parsed = true
	}

	cfg := DefaultConfig()

	if fileCfg := loadJSONConfig(); fileCfg != nil {
		applyFileOverrides(cfg, fileCfg)
	}
	applyEnvOverrides(cfg)
	applyFlagOverrides(cfg)

	return cfg
}

func DefaultConfig() *Config {
	return &Config{
		Addr:        defaultAddr,
		Port:        defaultPort,
		DBStr:       defaultDBStr,
		MigratePath: defaultMigratePath,
		JWTSecret:   defaultJWTSecret,
		TokenTTL:    defaultTokenTTL,
	}
}

type fileConfig struct {
	Addr          string `json:"addr"`
	Port          int    `json:"port"`
	DBStr         string `json:"dbstr"`
	MigratePath   string `json:"migratepath"`
	JWTSecret     string `json:"jwtsecret"`
	TokenTTLHours int    `json:"tokenttlhours"`
}

func loadJSONConfig() *fileConfig {
	configPath := *configFile
	if configPath == "" {
		configPath = os.Getenv("CONFIG")
	}
	if configPath == "" {
		return nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		fmt.Printf("Warning: %s %s: %v\n", errors.ErrConfigFileReadFailed.Error(), configPath, err)
		return nil
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		fmt.Printf("Warning: %s: %v\n", errors.ErrConfigParseFailed.Error(), err)
		return nil
	}
	return &fc
}

func applyFileOverrides(cfg *Config, fc *fileConfig) {
	if fc.Addr != "" {
		cfg.Addr = fc.Addr
	}
	if fc.Port != 0 {
		cfg.Port = fc.Port
	}
	if fc.DBStr != "" {
		cfg.DBStr = fc.DBStr
	}
	if fc.MigratePath != "" {
		cfg.MigratePath = fc.MigratePath
	}
	if fc.JWTSecret != "" {
		cfg.JWTSecret = fc.JWTSecret
	}
	if fc.TokenTTLHours > 0 {
		cfg.TokenTTL = time.Duration(fc.TokenTTLHours) * time.Hour
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err != nil || p < 1 || p > 65535 {
			fmt.Printf("Warning: %s в переменной окружения PORT: %s\n", errors.ErrConfigInvalidFormat.Error(), v)
		} else {
			cfg.Port = p
		}
	}
	if v := os.Getenv("DB_STR"); v != "" {
		cfg.DBStr = v
	}
	if v := os.Getenv("MIGRATE_PATH"); v != "" {
		cfg.MigratePath = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}

	if cfg.DBStr == defaultDBStr {
		dbUser := os.Getenv("DB_USER")
		dbPassword := os.Getenv("DB_PASSWORD")
		dbName := os.Getenv("DB_NAME")
		dbHost := os.Getenv("DB_HOST")
		dbPort := os.Getenv("DB_PORT")
		if dbUser != "" && dbPassword != "" && dbName != "" && dbHost != "" && dbPort != "" {
			cfg.DBStr = fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPassword, dbHost, dbPort, dbName)
		}
	}
}

func applyFlagOverrides(cfg *Config) {
	if *addr != defaultAddr {
		cfg.Addr = *addr
	}
	if *port != defaultPort {
		cfg.Port = *port
	}
	if *migratePath != defaultMigratePath {
		cfg.MigratePath = *migratePath
	}
	if *dbstr != "" {
		cfg.DBStr = *dbstr
	}
	if *jwtSecret != "" {
		cfg.JWTSecret = *jwtSecret
	}
}
