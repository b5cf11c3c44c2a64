package core

import (
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Storage drivers
const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

type (
	StorageConfig struct {
		Driver string
		Path   string
		Key    string // the single key the board document lives under
	}

	ServerConfig struct {
		Host           string
		Address        string
		DisableReqLogs bool
	}

	// BoardConfig holds the values a freshly seeded document starts with.
	BoardConfig struct {
		ClubName      string
		EventName     string
		AdminPasscode string
		Location      *time.Location
	}

	Config struct {
		Env              string // DEV (local; default), TEST, QA, PROD
		AppName          string
		Build            string
		Debug            bool
		TestMode         bool
		RollbarToken     string
		SendgridApiKey   string
		DefaultFromEmail mail.Address

		Storage StorageConfig
		Server  ServerConfig
		Board   BoardConfig
	}
)

func newViper() *viper.Viper {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Club Board")
	v.SetDefault("build", "dev")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("storageDriver", DriverBolt)
	v.SetDefault("storagePath", filepath.Join("data", "board.db"))
	v.SetDefault("storageKey", "htic_marathon_tracker_v1")
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverAddress", ":8000")
	v.SetDefault("disableReqLogs", false)
	v.SetDefault("timezone", "Local")
	v.SetDefault("clubName", "St. Tom’s Catholic International College – Intra Club")
	v.SetDefault("eventName", "HTIC Charity Marathon")
	v.SetDefault("adminPasscode", "admin123")
	return v
}

// NewConfig reads the configuration from the environment.
// A `config/.env.<env>` file (relative to CONFIG_DIR, or the working directory) is loaded first when it exists.
func NewConfig() (*Config, error) {
	v := newViper()

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(configDir(), ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}
	v.AutomaticEnv()

	return configFrom(v, env)
}

func configDir() string {
	if dir := os.Getenv("CONFIG_DIR"); dir != "" {
		return dir
	}
	return "config"
}

func configFrom(v *viper.Viper, env string) (*Config, error) {
	loc, err := time.LoadLocation(v.GetString("timezone"))
	if err != nil {
		return nil, errors.Wrap(err, "loading timezone")
	}
	from, err := mail.ParseAddress(v.GetString("defaultFromEmail"))
	if err != nil {
		return nil, errors.Wrap(err, "parsing defaultFromEmail")
	}

	conf := &Config{
		Env:              env,
		AppName:          v.GetString("appName"),
		Build:            v.GetString("build"),
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		RollbarToken:     v.GetString("rollbarToken"),
		SendgridApiKey:   v.GetString("sendgridApiKey"),
		DefaultFromEmail: *from,
		Storage: StorageConfig{
			Driver: strings.ToLower(v.GetString("storageDriver")),
			Path:   v.GetString("storagePath"),
			Key:    v.GetString("storageKey"),
		},
		Server: ServerConfig{
			Host:           v.GetString("serverHost"),
			Address:        v.GetString("serverAddress"),
			DisableReqLogs: v.GetBool("disableReqLogs"),
		},
		Board: BoardConfig{
			ClubName:      v.GetString("clubName"),
			EventName:     v.GetString("eventName"),
			AdminPasscode: v.GetString("adminPasscode"),
			Location:      loc,
		},
	}
	return conf, nil
}

// NewTestConfig returns the defaults with an in-memory store, for tests.
func NewTestConfig() *Config {
	conf, err := configFrom(newViper(), "TEST")
	if err != nil {
		panic(err)
	}
	conf.TestMode = true
	conf.Storage.Driver = DriverMemory
	conf.Server.DisableReqLogs = true
	conf.Board.Location = time.UTC
	return conf
}
