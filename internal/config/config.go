package config

import (
	"time"

	"go.uber.org/zap/zapcore"
)

// Environment keys, in declaration order.
const (
	KeyAppEnv           = "APP_ENV"
	KeySecretKey        = "SECRET_KEY"
	KeyHeartbeatSeconds = "HEARTBEAT_SECONDS"
	KeyTempDeadbandF    = "TEMP_DEADBAND_F"
)

// PlaceholderSecret is the default secret. Real deployments override it.
const PlaceholderSecret = "change-me"

const redactedSecret = "********"

// Settings holds the common configuration shared by BevForge services.
// A Settings value is built once at startup and passed to whatever needs it.
type Settings struct {
	AppEnv    string `env:"APP_ENV" envDefault:"dev" json:"app_env" yaml:"app_env"`
	SecretKey string `env:"SECRET_KEY" envDefault:"change-me" json:"secret_key" yaml:"secret_key"`

	// Liveness cadence in seconds
	HeartbeatSeconds int `env:"HEARTBEAT_SECONDS" envDefault:"5" json:"heartbeat_seconds" yaml:"heartbeat_seconds"`

	// Temperature tolerance band in degrees Fahrenheit
	TempDeadbandF int `env:"TEMP_DEADBAND_F" envDefault:"3" json:"temp_deadband_f" yaml:"temp_deadband_f"`
}

// Keys returns the environment keys understood by Settings.
func Keys() []string {
	return []string{KeyAppEnv, KeySecretKey, KeyHeartbeatSeconds, KeyTempDeadbandF}
}

// Defaults returns the compiled-in settings.
func Defaults() Settings {
	return Settings{
		AppEnv:           "dev",
		SecretKey:        PlaceholderSecret,
		HeartbeatSeconds: 5,
		TempDeadbandF:    3,
	}
}

// Heartbeat returns the heartbeat interval as a duration.
func (s Settings) Heartbeat() time.Duration {
	return time.Duration(s.HeartbeatSeconds) * time.Second
}

// UsesPlaceholderSecret reports whether the secret was never overridden.
func (s Settings) UsesPlaceholderSecret() bool {
	return s.SecretKey == PlaceholderSecret
}

// Redacted returns a copy safe for display.
func (s Settings) Redacted() Settings {
	if s.SecretKey != "" {
		s.SecretKey = redactedSecret
	}
	return s
}

// MarshalLogObject implements zapcore.ObjectMarshaler. The secret is never logged.
func (s Settings) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("app_env", s.AppEnv)
	enc.AddString("secret_key", s.Redacted().SecretKey)
	enc.AddInt("heartbeat_seconds", s.HeartbeatSeconds)
	enc.AddInt("temp_deadband_f", s.TempDeadbandF)
	return nil
}
