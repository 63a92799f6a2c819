package config

import (
	"fmt"
	"strings"

	"github.com/Spok95/campus-bot/internal/domain/attendance"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Env       string
		Timezone  string
		LogFormat string `mapstructure:"log_format"`
	} `mapstructure:"app"`

	Telegram struct {
		Token       string
		AdminChatID int64 `mapstructure:"admin_chat_id"`
		PollTimeout int   `mapstructure:"poll_timeout"`
	} `mapstructure:"telegram"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Postgres struct {
		DSN        string
		Migrations string
	} `mapstructure:"postgres"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Attendance struct {
		Threshold int
		Match     string
	} `mapstructure:"attendance"`
}

// Policy правила посещаемости из конфига.
func (c Config) Policy() attendance.Policy {
	return attendance.Policy{
		Threshold: c.Attendance.Threshold,
		Match:     attendance.MatchMode(c.Attendance.Match),
	}
}

func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	// APP_POSTGRES_DSN, APP_TELEGRAM_TOKEN и т.д. перекрывают значения из файла
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.env", "prod")
	v.SetDefault("app.timezone", "UTC")
	v.SetDefault("app.log_format", "json")
	v.SetDefault("telegram.poll_timeout", 30)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("postgres.migrations", "migrations")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("attendance.threshold", attendance.DefaultThreshold)
	v.SetDefault("attendance.match", string(attendance.MatchFuzzy))

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	if err := c.Policy().Validate(); err != nil {
		return c, fmt.Errorf("config attendance: %w", err)
	}
	return c, nil
}
