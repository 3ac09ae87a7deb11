package config

import (
	"fmt"
	"os"

	"github.com/dhbw-wi22a/B2B-Backend/models"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DatabaseConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Database string `yaml:"database"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	Database int    `yaml:"database"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type JWTConfig struct {
	PrivateKeyPath string `yaml:"private_key_path"`
	PublicKeyPath  string `yaml:"public_key_path"`
}

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Server   ServerConfig   `yaml:"server"`
	JWT      JWTConfig      `yaml:"jwt"`
}

// MailServiceConfig is read from the environment (.env supported) like the
// rest of the deployment secrets, not from config.yaml.
type MailServiceConfig struct {
	BaseURL               string
	RegistrationEndpoint  string
	GroupInviteEndpoint   string
	PasswordResetEndpoint string
	OrderConfirmEndpoint  string
	ShopBaseURL           string
}

func LoadConfig(filename string) (Config, error) {
	var config Config
	file, err := os.Open(filename)
	if err != nil {
		return config, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return config, err
	}

	return config, nil
}

func LoadMailServiceConfig() MailServiceConfig {
	// Missing .env is fine, plain environment variables still apply.
	_ = godotenv.Load()

	return MailServiceConfig{
		BaseURL:               os.Getenv("MAILSERVICE_BASE_URL"),
		RegistrationEndpoint:  os.Getenv("MAILSERVICE_REGISTRATION_ENDPOINT"),
		GroupInviteEndpoint:   os.Getenv("MAILSERVICE_GROUP_INVITATION_ENDPOINT"),
		PasswordResetEndpoint: os.Getenv("MAILSERVICE_PASSWORD_RESET_ENDPOINT"),
		OrderConfirmEndpoint:  os.Getenv("MAILSERVICE_ORDER_CONFIRMATION_ENDPOINT"),
		ShopBaseURL:           os.Getenv("SHOP_BASE_URL"),
	}
}

func SetupMySQLConnection() (*gorm.DB, error) {
	config, err := LoadConfig("config/config.yaml")
	if err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.Database.Username,
		config.Database.Password,
		config.Database.Host,
		config.Database.Port,
		config.Database.Database,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	if err := MigrateModels(db); err != nil {
		return nil, err
	}

	return db, nil
}

// MigrateModels keeps the schema in sync for every entity the API serves.
func MigrateModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.LoginToken{},
		&models.VerificationToken{},
		&models.Address{},
		&models.ItemDetails{},
		&models.ItemImage{},
		&models.Category{},
		&models.Item{},
		&models.Order{},
		&models.OrderInfo{},
		&models.OrderItem{},
		&models.ShoppingCart{},
		&models.CartItem{},
		&models.CompanyGroup{},
		&models.CompanyGroupMembership{},
		&models.GroupInvitation{},
		&models.ShoppingList{},
		&models.ShoppingListItem{},
	)
}

func SetupRedisConnection() (*redis.Client, error) {
	config, err := LoadConfig("config/config.yaml")
	if err != nil {
		return nil, err
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.Redis.Addr,
		Password: config.Redis.Password,
		DB:       config.Redis.Database,
	})

	return redisClient, nil
}
