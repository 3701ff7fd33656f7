package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Email    EmailConfig
	Quiz     QuizConfig
	CORS     CORSConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	// MigrationsPath - каталог SQL-миграций golang-migrate
	MigrationsPath string `mapstructure:"migrations_path"`
}

// RedisConfig содержит унифицированные настройки подключения к Redis.
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	// Mode: "single", "sentinel" или "cluster". По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: список адресов (хост:порт). Для single используется первый адрес.
	Addrs []string `mapstructure:"addrs"`

	// Addr: адрес для single, если Addrs пуст
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: имя мастера (только sentinel)
	MasterName string `mapstructure:"master_name"`

	MaxRetries      int `mapstructure:"max_retries"`
	MinRetryBackoff int `mapstructure:"min_retry_backoff"`
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"`
}

// JWTConfig содержит настройки JWT
type JWTConfig struct {
	Secret        string `mapstructure:"secret"`
	ExpirationHrs int    `mapstructure:"expirationHrs"`
}

// EmailConfig содержит настройки писем и кодов подтверждения
type EmailConfig struct {
	// ResendAPIKey: без ключа письма не отправляются, код пишется в лог
	ResendAPIKey      string `mapstructure:"resend_api_key"`
	From              string `mapstructure:"from"`
	CodePepper        string `mapstructure:"code_pepper"`
	VerificationTTL   int    `mapstructure:"verification_ttl_min"`
	ResendCooldownSec int    `mapstructure:"resend_cooldown_sec"`
	MaxAttempts       int    `mapstructure:"max_attempts"`
}

// QuizConfig содержит настройки квиза
type QuizConfig struct {
	// QuestionCacheTTLSec: время жизни закешированного набора вопросов
	QuestionCacheTTLSec int `mapstructure:"question_cache_ttl_sec"`
}

// CORSConfig содержит разрешенные источники
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// PostgresURL формирует URL подключения для golang-migrate
func (d *DatabaseConfig) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}

// QuestionCacheTTL возвращает время жизни кеша вопросов
func (q QuizConfig) QuestionCacheTTL() time.Duration {
	return time.Duration(q.QuestionCacheTTLSec) * time.Second
}

// CodeTTL возвращает срок действия кода подтверждения
func (e EmailConfig) CodeTTL() time.Duration {
	return time.Duration(e.VerificationTTL) * time.Minute
}

// ResendCooldown возвращает паузу между отправками кода
func (e EmailConfig) ResendCooldown() time.Duration {
	return time.Duration(e.ResendCooldownSec) * time.Second
}

// Load загружает конфигурацию из файла и переменных окружения
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Отдельный экземпляр, без глобального состояния

	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.read_timeout", 15)
	vip.SetDefault("server.write_timeout", 30)
	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("database.migrations_path", "migrations")
	vip.SetDefault("redis.mode", "single")
	vip.SetDefault("redis.addr", "localhost:6379")
	vip.SetDefault("jwt.expirationHrs", 24)
	vip.SetDefault("email.from", "SpaceSnap <no-reply@spacesnap.app>")
	vip.SetDefault("email.verification_ttl_min", 15)
	vip.SetDefault("email.resend_cooldown_sec", 60)
	vip.SetDefault("email.max_attempts", 5)
	vip.SetDefault("quiz.question_cache_ttl_sec", 300)
	vip.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})

	// Привязка для секции Database
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")
	vip.BindEnv("database.migrations_path", "DATABASE_MIGRATIONS_PATH")

	// Привязка для секции Redis
	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	// Привязка для секции JWT
	vip.BindEnv("jwt.secret", "JWT_SECRET")
	vip.BindEnv("jwt.expirationHrs", "JWT_EXPIRATIONHRS")

	// Привязка для секции Email
	vip.BindEnv("email.resend_api_key", "RESEND_API_KEY")
	vip.BindEnv("email.from", "EMAIL_FROM")
	vip.BindEnv("email.code_pepper", "EMAIL_CODE_PEPPER")
	vip.BindEnv("email.verification_ttl_min", "EMAIL_VERIFICATION_TTL_MIN")
	vip.BindEnv("email.resend_cooldown_sec", "EMAIL_RESEND_COOLDOWN_SEC")
	vip.BindEnv("email.max_attempts", "EMAIL_MAX_ATTEMPTS")

	// Привязка для Quiz, Server и CORS
	vip.BindEnv("quiz.question_cache_ttl_sec", "QUIZ_QUESTION_CACHE_TTL_SEC")
	vip.BindEnv("server.port", "SERVER_PORT")
	vip.BindEnv("cors.allowed_origins", "CORS_ALLOWED_ORIGINS")

	if configPath != "" {
		vip.SetConfigFile(configPath)
		// Файл не обязателен: все значения можно задать через окружение
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Redis.Addrs = splitList(cfg.Redis.Addrs)
	cfg.CORS.AllowedOrigins = splitList(cfg.CORS.AllowedOrigins)

	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Database: %s@%s:%s/%s (sslmode=%s)", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName, cfg.Database.SSLMode)
		log.Printf("Redis: mode=%s addr=%s addrs=%v", cfg.Redis.Mode, cfg.Redis.Addr, cfg.Redis.Addrs)
		log.Printf("JWT Expiration Hours: %d", cfg.JWT.ExpirationHrs)
		log.Printf("Resend configured: %t", cfg.Email.ResendAPIKey != "")
		log.Printf("Question cache TTL: %s", cfg.Quiz.QuestionCacheTTL())
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("-----------------------------------------")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if len(c.JWT.Secret) < 16 {
		return fmt.Errorf("jwt secret must be at least 16 characters (check JWT_SECRET env var)")
	}
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return fmt.Errorf("database configuration (host, dbname, user) is incomplete in config (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}
	if os.Getenv("GIN_MODE") == "release" {
		if c.Database.Password == "" {
			return fmt.Errorf("database password is required in release mode (check DATABASE_PASSWORD env var)")
		}
		if c.Email.ResendAPIKey != "" && c.Email.CodePepper == "" {
			return fmt.Errorf("email code pepper is required when emails are sent (check EMAIL_CODE_PEPPER env var)")
		}
	}
	return nil
}

// splitList раскладывает значения вида "a,b" из переменных окружения
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
