package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type ShopConfig struct {
	Env           string `yaml:"env"`
	ShopDB        `yaml:"shop_db"`
	LogConfig     `yaml:"log_config"`
	WalletService `yaml:"wallet-service"`
	KafkaService  `yaml:"kafka-service"`
	MetricsServer `yaml:"metrics-server"`
	ShopLimits    `yaml:"shop_limits"`
	Persistence   `yaml:"persistence"`
}

type ShopDB struct {
	Dsn string `yaml:"dsn"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type WalletService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type KafkaService struct {
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	TradeTopic string `yaml:"trade_topic" env-default:"shop-trade-events"`
	ShopTopic  string `yaml:"shop_topic" env-default:"shop-lifecycle-events"`
}

type MetricsServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port" env-default:"9090"`
}

type ShopLimits struct {
	MaxShopsPerOwner  int   `yaml:"max_shops_per_owner" env-default:"10"`
	MaxOfferStock     int64 `yaml:"max_offer_stock" env-default:"10000"`
	InventoryCapacity int64 `yaml:"inventory_capacity" env-default:"2304"`
}

type Persistence struct {
	FlushInterval  time.Duration `yaml:"flush_interval" env-default:"30s"`
	MigrationsPath string        `yaml:"migrations_path"`
}

func MustLoad() *ShopConfig {

	// Processing env config variable and file
	configPath := os.Getenv("SHOP_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("SHOP_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg ShopConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
