package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type EscrowConfig struct {
	Env            string `yaml:"env" env-default:"local"`
	HTTPServer     `yaml:"http_server"`
	EscrowDB       `yaml:"escrow_db"`
	LogConfig      `yaml:"log_config"`
	ListingService `yaml:"listing-service"`
	PaymentService `yaml:"payment-service"`
	KafkaService   `yaml:"kafka-service"`
	Policy         `yaml:"policy"`
	Vault          `yaml:"vault"`
}

type HTTPServer struct {
	Host string `yaml:"host" env-default:"0.0.0.0"`
	Port string `yaml:"port" env-default:"8080"`
}

type EscrowDB struct {
	Dsn            string `yaml:"dsn" env:"ESCROW_DB_DSN"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env-default:"info"`
	LogFormat string `yaml:"log_format" env-default:"json"`
}

type ListingService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type PaymentService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type KafkaService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

// Policy holds the configurable lifecycle windows. BuyerTimeoutPolicy decides
// what happens when the buyer never confirms receipt: "cancel" refunds the
// buyer, "complete" releases the funds to the seller.
type Policy struct {
	SellerWindow       time.Duration `yaml:"seller_window" env-default:"30m"`
	BuyerWindow        time.Duration `yaml:"buyer_window" env-default:"24h"`
	BuyerTimeoutPolicy string        `yaml:"buyer_timeout_policy" env-default:"cancel"`
	SweepInterval      time.Duration `yaml:"sweep_interval" env-default:"30s"`
}

const (
	BuyerTimeoutCancel   = "cancel"
	BuyerTimeoutComplete = "complete"
)

type Vault struct {
	EncryptionKey string `yaml:"encryption_key" env:"VAULT_ENCRYPTION_KEY"`
}

func MustLoad() *EscrowConfig {

	// Processing env config variable and file
	configPath := os.Getenv("ESCROW_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("ESCROW_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg EscrowConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
