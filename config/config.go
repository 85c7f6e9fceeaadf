package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	App          AppConfig          `mapstructure:"app"`
	Server       ServerConfig       `mapstructure:"server"`
	Postgres     PostgresConfig     `mapstructure:"postgres"`
	SessionRedis SessionRedisConfig `mapstructure:"sessionredis"`
	RoomRedis    RoomRedisConfig    `mapstructure:"roomredis"`
	Kafka        KafkaConfig        `mapstructure:"kafka"`
	Auth         AuthConfig         `mapstructure:"auth"`
	RateLimit    RateLimitConfig    `mapstructure:"ratelimit"`
	Game         GameConfig         `mapstructure:"game"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	Host         string        `mapstructure:"host"`
	Description  string        `mapstructure:"description"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	AllowOrigins string        `mapstructure:"allow_origins"`
}

type PostgresConfig struct {
	Port     string `mapstructure:"port"`
	Host     string `mapstructure:"host"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
}

type SessionRedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type RoomRedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Brokers  []string `mapstructure:"brokers"`
	Topic    string   `mapstructure:"topic"`
	ClientID string   `mapstructure:"client_id"`
}

type AuthConfig struct {
	// TrustHeaders accepts X-User-ID from a gateway in front of the service.
	TrustHeaders bool `mapstructure:"trust_headers"`
}

type RateLimitConfig struct {
	GlobalPerMinute int `mapstructure:"global_per_minute"`
	GlobalBurst     int `mapstructure:"global_burst"`
	PlayerPerMinute int `mapstructure:"player_per_minute"`
	PlayerBurst     int `mapstructure:"player_burst"`
}

type GameConfig struct {
	// Store is "memory" or "redis".
	Store            string        `mapstructure:"store"`
	BattlePrompts    int           `mapstructure:"battle_prompts"`
	SurvivalPrompts  int           `mapstructure:"survival_prompts"`
	SurvivalCapacity int           `mapstructure:"survival_capacity"`
	TickInterval     time.Duration `mapstructure:"tick_interval"`
	HardTimeout      time.Duration `mapstructure:"hard_timeout"`
	EffectDuration   time.Duration `mapstructure:"effect_duration"`
	IdleTimeout      time.Duration `mapstructure:"idle_timeout"`
	ReapInterval     time.Duration `mapstructure:"reap_interval"`
	FinishedTTL      time.Duration `mapstructure:"finished_ttl"`
	DefaultBook      string        `mapstructure:"default_book"`
	DefaultAcademy   string        `mapstructure:"default_academy"`
	BcryptCost       int           `mapstructure:"bcrypt_cost"`
}

func Read() Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/app")
	viper.AddConfigPath("/")

	// Defaults
	viper.SetDefault("app.name", "wordgame-service")
	viper.SetDefault("app.version", "0.1.0")

	viper.SetDefault("server.port", "8083")
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.idle_timeout", 5*time.Second)
	viper.SetDefault("server.read_timeout", 10*time.Second)
	viper.SetDefault("server.write_timeout", 10*time.Second)
	viper.SetDefault("server.allow_origins", "http://localhost:5173")

	viper.SetDefault("postgres.port", "5432")
	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.user", "myuser")
	viper.SetDefault("postgres.password", "mypassword")
	viper.SetDefault("postgres.db", "wordgamedb")

	viper.SetDefault("sessionredis.enabled", true)
	viper.SetDefault("sessionredis.host", "localhost")
	viper.SetDefault("sessionredis.port", "6379")
	viper.SetDefault("sessionredis.db", 0)

	viper.SetDefault("roomredis.host", "localhost")
	viper.SetDefault("roomredis.port", "6379")
	viper.SetDefault("roomredis.db", 1)

	viper.SetDefault("kafka.enabled", false)
	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})
	viper.SetDefault("kafka.topic", "game-events")
	viper.SetDefault("kafka.client_id", "wordgame-service")

	viper.SetDefault("auth.trust_headers", false)

	viper.SetDefault("ratelimit.global_per_minute", 6000)
	viper.SetDefault("ratelimit.global_burst", 500)
	viper.SetDefault("ratelimit.player_per_minute", 240)
	viper.SetDefault("ratelimit.player_burst", 20)

	viper.SetDefault("game.store", "redis")
	viper.SetDefault("game.battle_prompts", 10)
	viper.SetDefault("game.survival_prompts", 50)
	viper.SetDefault("game.survival_capacity", 10)
	viper.SetDefault("game.tick_interval", 100*time.Millisecond)
	viper.SetDefault("game.hard_timeout", 10*time.Second)
	viper.SetDefault("game.effect_duration", 5*time.Second)
	viper.SetDefault("game.idle_timeout", 30*time.Minute)
	viper.SetDefault("game.reap_interval", time.Minute)
	viper.SetDefault("game.finished_ttl", 5*time.Minute)
	viper.SetDefault("game.default_book", "기본")
	viper.SetDefault("game.default_academy", "academy_default")
	viper.SetDefault("game.bcrypt_cost", 10)

	// ENV overrides with prefix GAME_ and dot-to-underscore replacement
	viper.SetEnvPrefix("GAME")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		zap.L().Warn("Failed to read configuration file", zap.Error(err))
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		zap.L().Error("Configuration could not be parsed", zap.Error(err))
	}

	return config
}
