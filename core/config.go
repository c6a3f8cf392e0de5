package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	// Config holds all the settings the application needs. Core packages never
	// read it ambiently; relevant values are passed in explicitly.
	Config struct {
		Debug            bool
		TestMode         bool
		Env              string // DEV (default), TEST, QA, PROD
		Build            string
		AppName          string
		SecretKey        string
		DefaultFromEmail mail.Address
		SendgridAPIKey   string
		RollbarToken     string

		Server   ServerConfig
		Upstream UpstreamConfig
		View     ViewConfig
	}

	ServerConfig struct {
		Host               string
		Addr               string
		DebugAddr          string
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
	}

	// UpstreamConfig points at the tracking system's REST service that owns
	// the flat tables (bulk-fetch + single-table CRUD).
	UpstreamConfig struct {
		BaseURL string
		Token   string
		Timeout time.Duration
	}

	// ViewConfig holds the in-memory pagination knobs of the dashboard views.
	ViewConfig struct {
		WindowSize      int
		WindowIncrement int
	}
)

func NewConfig() *Config {
	conf := viper.New()
	conf.SetTypeByDefaultValue(true)

	// defaults
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Mahafali")
	conf.SetDefault("build", "dev")
	conf.SetDefault("secretKey", "w3k@-ujuzi$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy")
	conf.SetDefault("defaultFromEmail", "noreply@localhost")
	conf.SetDefault("sendgridApiKey", "")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("serverHost", "localhost")
	conf.SetDefault("serverAddr", ":8000")
	conf.SetDefault("serverDebugAddr", ":8001")
	conf.SetDefault("shutdownTimeout", 5*time.Second)
	conf.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	conf.SetDefault("upstreamBaseUrl", "http://localhost:8080/api")
	conf.SetDefault("upstreamToken", "")
	conf.SetDefault("upstreamTimeout", 30*time.Second)
	conf.SetDefault("viewWindowSize", 10)
	conf.SetDefault("viewWindowIncrement", 10)

	env := os.Getenv("ENV")
	var testMode bool
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		testMode = true
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Debug:            conf.GetBool("debug"),
		TestMode:         testMode,
		Env:              env,
		Build:            conf.GetString("build"),
		AppName:          conf.GetString("appName"),
		SecretKey:        conf.GetString("secretKey"),
		DefaultFromEmail: mail.Address{Address: conf.GetString("defaultFromEmail")},
		SendgridAPIKey:   conf.GetString("sendgridApiKey"),
		RollbarToken:     conf.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:               conf.GetString("serverHost"),
			Addr:               conf.GetString("serverAddr"),
			DebugAddr:          conf.GetString("serverDebugAddr"),
			ShutdownTimeout:    conf.GetDuration("shutdownTimeout"),
			JWTExpirationDelta: conf.GetDuration("jwtExpirationDelta"),
		},
		Upstream: UpstreamConfig{
			BaseURL: strings.TrimRight(conf.GetString("upstreamBaseUrl"), "/"),
			Token:   conf.GetString("upstreamToken"),
			Timeout: conf.GetDuration("upstreamTimeout"),
		},
		View: ViewConfig{
			WindowSize:      conf.GetInt("viewWindowSize"),
			WindowIncrement: conf.GetInt("viewWindowIncrement"),
		},
	}
}
