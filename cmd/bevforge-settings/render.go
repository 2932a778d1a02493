package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/aescanero/bevforge/internal/config"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
	formatEnv  = "env"
)

// explained pairs settings with the source of each key.
type explained struct {
	Settings config.Settings  `json:"settings" yaml:"settings"`
	Sources  map[string]string `json:"sources" yaml:"sources"`
}

func render(w io.Writer, format string, s config.Settings, origins map[string]config.Source) error {
	switch format {
	case formatText:
		return renderText(w, s, origins)
	case formatEnv:
		out, err := godotenv.Marshal(values(s))
		if err != nil {
			return fmt.Errorf("failed to encode env: %w", err)
		}
		_, err = fmt.Fprintln(w, out)
		return err
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(document(s, origins))
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(document(s, origins)); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func renderText(w io.Writer, s config.Settings, origins map[string]config.Source) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	vals := values(s)
	for _, key := range config.Keys() {
		if origins != nil {
			fmt.Fprintf(tw, "%s\t%s\t(%s)\n", key, vals[key], origins[key])
		} else {
			fmt.Fprintf(tw, "%s\t%s\n", key, vals[key])
		}
	}
	return tw.Flush()
}

func document(s config.Settings, origins map[string]config.Source) any {
	if origins == nil {
		return s
	}
	sources := make(map[string]string, len(origins))
	for _, key := range config.Keys() {
		sources[key] = origins[key].String()
	}
	return explained{Settings: s, Sources: sources}
}

func values(s config.Settings) map[string]string {
	return map[string]string{
		config.KeyAppEnv:           s.AppEnv,
		config.KeySecretKey:        s.SecretKey,
		config.KeyHeartbeatSeconds: strconv.Itoa(s.HeartbeatSeconds),
		config.KeyTempDeadbandF:    strconv.Itoa(s.TempDeadbandF),
	}
}
