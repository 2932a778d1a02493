package config

import (
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
)

// Source identifies the layer a value was taken from.
type Source int

const (
	SourceDefault Source = iota
	SourceFile
	SourceEnv
)

func (s Source) String() string {
	switch s {
	case SourceDefault:
		return "default"
	case SourceFile:
		return "file"
	case SourceEnv:
		return "env"
	default:
		return "unknown"
	}
}

// Layer is one set of raw key/value overrides.
type Layer struct {
	Source Source
	Values map[string]string
}

// Resolution is the outcome of merging layers: the winning raw value for
// every known key and where it came from.
type Resolution struct {
	Values  map[string]string
	Origins map[string]Source
}

// Origin returns the layer that supplied key. Unknown keys report SourceDefault.
func (r Resolution) Origin(key string) Source {
	return r.Origins[strings.ToUpper(key)]
}

// Merge overlays layers in order; a later layer wins over an earlier one.
// Keys are matched case-insensitively and stored upper-cased. When a layer
// holds the same key in several spellings, the upper-case spelling wins.
// Empty values still override; unknown keys are dropped.
func Merge(layers ...Layer) Resolution {
	known := make(map[string]bool, len(Keys()))
	for _, k := range Keys() {
		known[k] = true
	}

	res := Resolution{
		Values:  make(map[string]string, len(known)),
		Origins: make(map[string]Source, len(known)),
	}

	for _, layer := range layers {
		for k, v := range layer.Values {
			key := strings.ToUpper(strings.TrimSpace(k))
			if !known[key] {
				continue
			}
			if key != k {
				if _, ok := layer.Values[key]; ok {
					continue
				}
			}
			res.Values[key] = v
			res.Origins[key] = layer.Source
		}
	}

	return res
}

// ReadEnvFile parses a KEY=VALUE env file. The returned error wraps
// os.ErrNotExist when the file is absent.
func ReadEnvFile(fsys afero.Fs, path string) (map[string]string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return godotenv.Parse(f)
}

// EnvironMap converts os.Environ-style pairs into a map.
func EnvironMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		m[k] = v
	}
	return m
}

func defaultLayer() Layer {
	d := Defaults()
	return Layer{
		Source: SourceDefault,
		Values: map[string]string{
			KeyAppEnv:           d.AppEnv,
			KeySecretKey:        d.SecretKey,
			KeyHeartbeatSeconds: strconv.Itoa(d.HeartbeatSeconds),
			KeyTempDeadbandF:    strconv.Itoa(d.TempDeadbandF),
		},
	}
}
