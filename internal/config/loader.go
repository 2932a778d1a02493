package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v10"
	"github.com/spf13/afero"
)

// DefaultEnvFile is the env file read when no other path is configured.
const DefaultEnvFile = ".env"

// Loader resolves Settings from defaults, an env file and the process environment.
type Loader struct {
	fs       afero.Fs
	envFile  string
	environ  func() []string
	required bool
}

// Option configures a Loader.
type Option func(*Loader)

// WithEnvFile sets the env file path. An empty path skips the file layer.
func WithEnvFile(path string) Option {
	return func(l *Loader) { l.envFile = path }
}

// WithFs sets the filesystem the env file is read from.
func WithFs(fsys afero.Fs) Option {
	return func(l *Loader) { l.fs = fsys }
}

// WithEnviron sets the process environment source.
func WithEnviron(environ func() []string) Option {
	return func(l *Loader) { l.environ = environ }
}

// WithRequiredEnvFile makes a missing env file an error.
func WithRequiredEnvFile(required bool) Option {
	return func(l *Loader) { l.required = required }
}

// NewLoader creates a loader reading ".env" from the OS filesystem and os.Environ.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		fs:      afero.NewOsFs(),
		envFile: DefaultEnvFile,
		environ: os.Environ,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load resolves settings with the default loader.
func Load() (Settings, error) {
	return NewLoader().Load()
}

// Resolve merges defaults, the env file and the process environment without
// coercing any value.
func (l *Loader) Resolve() (Resolution, error) {
	layers := []Layer{defaultLayer()}

	if l.envFile != "" {
		values, err := ReadEnvFile(l.fs, l.envFile)
		switch {
		case err == nil:
			layers = append(layers, Layer{Source: SourceFile, Values: values})
		case errors.Is(err, os.ErrNotExist):
			if l.required {
				return Resolution{}, fmt.Errorf("%w: %s not found", ErrEnvFile, l.envFile)
			}
		default:
			return Resolution{}, fmt.Errorf("%w: %s: %w", ErrEnvFile, l.envFile, err)
		}
	}

	layers = append(layers, Layer{Source: SourceEnv, Values: EnvironMap(l.environ())})

	return Merge(layers...), nil
}

// Load resolves and coerces settings in a single pass. On failure no
// partial value is returned.
func (l *Loader) Load() (Settings, error) {
	res, err := l.Resolve()
	if err != nil {
		return Settings{}, err
	}
	return Coerce(res)
}

// Coerce converts resolved raw values into Settings. Strings pass through,
// including empty ones; an integer key holding a non-integer, or nothing,
// fails with ErrInvalidValue.
func Coerce(res Resolution) (Settings, error) {
	// env treats an empty value as unset, so explicit empties are handled here.
	for _, key := range []string{KeyHeartbeatSeconds, KeyTempDeadbandF} {
		if v, ok := res.Values[key]; ok && v == "" {
			return Settings{}, fmt.Errorf("%w: %s is empty, expected an integer", ErrInvalidValue, key)
		}
	}

	var s Settings
	if err := env.ParseWithOptions(&s, env.Options{Environment: res.Values}); err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}

	if v, ok := res.Values[KeyAppEnv]; ok {
		s.AppEnv = v
	}
	if v, ok := res.Values[KeySecretKey]; ok {
		s.SecretKey = v
	}

	return s, nil
}
