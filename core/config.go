package core

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Debug    bool
		TestMode bool
		Env      string // DEV (default), TEST, QA, PROD
		AppName  string
		Build    string

		SecretKey []byte

		// APIBaseURL is the real backend's base URL; only used when UseMockAPI is off.
		APIBaseURL string
		// UseMockAPI selects the in-process mock facade instead of the network client.
		UseMockAPI bool
		// MockDelay is the simulated network latency injected by the mock facade.
		MockDelay time.Duration
		// StatePath is the file backing the key-value store; empty means in-memory only.
		StatePath string

		OTPLength                 int
		OTPExpirationDelta        time.Duration
		OTPMaxAttempts            int
		OTPResendCooldown         int // seconds
		PasswordResetTimeoutDelta time.Duration

		Server ServerConfig
	}

	ServerConfig struct {
		Host               string
		Port               int
		JWTExpirationDelta time.Duration
	}
)

func (c ServerConfig) Address() string {
	host := c.Host
	if host == "" {
		host = "localhost"
	}
	return host + ":" + strconv.Itoa(c.Port)
}

// NewConfig loads the configuration from defaults, an optional
// config/.env.<env> file and environment variables prefixed with the
// current env name (eg. DEV_SECRETKEY).
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "ITMS")
	conf.SetDefault("build", "dev")
	conf.SetDefault("secretKey", "w#v3&8dixg_q!mzl)o+4u$25k^7p-ahy9(rn0jfs*ctb1e6$")
	conf.SetDefault("apiBaseURL", "http://localhost:8080")
	conf.SetDefault("useMockAPI", true)
	conf.SetDefault("mockDelay", 500*time.Millisecond)
	conf.SetDefault("statePath", "")
	conf.SetDefault("otpLength", 6)
	conf.SetDefault("otpExpirationDelta", 5*time.Minute)
	conf.SetDefault("otpMaxAttempts", 5)
	conf.SetDefault("otpResendCooldown", 60)
	conf.SetDefault("passwordResetTimeoutDelta", 3*24*time.Hour)
	conf.SetDefault("server.host", "")
	conf.SetDefault("server.port", 8080)
	conf.SetDefault("server.jwtExpirationDelta", time.Hour)

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	if env == "TEST" {
		conf.SetDefault("testMode", true)
		conf.SetDefault("mockDelay", time.Duration(0))
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err = godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Debug:                     conf.GetBool("debug"),
		TestMode:                  conf.GetBool("testMode"),
		Env:                       env,
		AppName:                   conf.GetString("appName"),
		Build:                     conf.GetString("build"),
		SecretKey:                 []byte(conf.GetString("secretKey")),
		APIBaseURL:                conf.GetString("apiBaseURL"),
		UseMockAPI:                conf.GetBool("useMockAPI"),
		MockDelay:                 conf.GetDuration("mockDelay"),
		StatePath:                 conf.GetString("statePath"),
		OTPLength:                 conf.GetInt("otpLength"),
		OTPExpirationDelta:        conf.GetDuration("otpExpirationDelta"),
		OTPMaxAttempts:            conf.GetInt("otpMaxAttempts"),
		OTPResendCooldown:         conf.GetInt("otpResendCooldown"),
		PasswordResetTimeoutDelta: conf.GetDuration("passwordResetTimeoutDelta"),
		Server: ServerConfig{
			Host:               conf.GetString("server.host"),
			Port:               conf.GetInt("server.port"),
			JWTExpirationDelta: conf.GetDuration("server.jwtExpirationDelta"),
		},
	}
}

// NewTestConfig returns a Config suitable for tests: no mock latency,
// a fixed secret key and no state file.
func NewTestConfig() *Config {
	return &Config{
		Debug:                     true,
		TestMode:                  true,
		Env:                       "TEST",
		AppName:                   "ITMS",
		SecretKey:                 []byte("secret"),
		APIBaseURL:                "http://localhost:8080",
		UseMockAPI:                true,
		OTPLength:                 6,
		OTPExpirationDelta:        5 * time.Minute,
		OTPMaxAttempts:            5,
		OTPResendCooldown:         60,
		PasswordResetTimeoutDelta: 3 * 24 * time.Hour,
		Server: ServerConfig{
			JWTExpirationDelta: 10 * time.Minute,
		},
	}
}
