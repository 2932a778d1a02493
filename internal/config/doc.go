// Package config provides the shared settings for BevForge services.
//
// Settings are resolved from three layers, lowest precedence first:
//   - compiled-in defaults (envDefault tags on Settings)
//   - an optional local env file (".env" by default)
//   - the process environment
//
// The merged key/value map is coerced into a typed Settings value by the env
// package. Loading never touches the process environment.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("heartbeat every %s\n", cfg.Heartbeat())
package config
