package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name string
	Env  string // development / production
	HTTP HTTP
}

type Log struct {
	Level string
	JSON  bool
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type Session struct {
	CookieName    string `mapstructure:"cookie_name"`
	TTLHours      int    `mapstructure:"ttl_hours"`       // 会话绝对有效期
	TouchAfterMin int    `mapstructure:"touch_after_min"` // 超过才回写时间戳（限制写放大）
	StatsCacheSec int    `mapstructure:"stats_cache_sec"` // /api/stats 缓存时长
}

type Config struct {
	App     App
	Log     Log
	DB      DB
	Redis   Redis   `mapstructure:"redis"`
	Session Session `mapstructure:"session"`
}

func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config: %v", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	applyDefaults(&c)
	return &c
}

func applyDefaults(c *Config) {
	if c.Session.CookieName == "" {
		c.Session.CookieName = "inventory_session"
	}
	if c.Session.TTLHours <= 0 {
		c.Session.TTLHours = 24 * 7 // 7 天
	}
	if c.Session.TouchAfterMin <= 0 {
		c.Session.TouchAfterMin = 24 * 60 // 24 小时内不重复 touch
	}
	if c.Session.StatsCacheSec <= 0 {
		c.Session.StatsCacheSec = 30
	}
}

func (c *Config) IsProduction() bool { return c.App.Env == "production" }
