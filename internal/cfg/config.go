package cfg

import (
	"github.com/spf13/viper"
)

type Config struct {
	TgToken   string
	WebAddr   string
	DevMode   bool // ослабляет проверку initData для локалки
	WebAppURL string
	LogLevel  string

	MaxAgeSeconds     int
	FutureSkewSeconds int
	MaxInitDataBytes  int
}

func Load() Config {
	v := viper.New()
	v.SetConfigFile(".env")
	_ = v.ReadInConfig()
	v.AutomaticEnv()

	v.SetDefault("WEB_ADDR", ":8080")
	v.SetDefault("DEV_MODE", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_AGE_SECONDS", 86400)
	v.SetDefault("FUTURE_SKEW_SECONDS", 300)
	v.SetDefault("MAX_INITDATA_BYTES", 4096)

	return Config{
		TgToken:           v.GetString("TG_TOKEN"),
		WebAddr:           v.GetString("WEB_ADDR"),
		DevMode:           v.GetBool("DEV_MODE"),
		WebAppURL:         v.GetString("WEBAPP_URL"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		MaxAgeSeconds:     v.GetInt("MAX_AGE_SECONDS"),
		FutureSkewSeconds: v.GetInt("FUTURE_SKEW_SECONDS"),
		MaxInitDataBytes:  v.GetInt("MAX_INITDATA_BYTES"),
	}
}
