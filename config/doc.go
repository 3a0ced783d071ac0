// Package config holds lazorkit settings: parser strictness, where level
// files live, and logging.
//
// Settings come from, in increasing precedence:
//   - DefaultConfig
//   - a config file (Load; .toml, .yaml, .yml, or .json)
//   - LAZORKIT_* environment variables (LoadFromEnv)
//
// Example:
//
//	cfg, err := config.Load("lazorkit.toml")
//	if err != nil {
//	    return err
//	}
//	cfg.LoadFromEnv()
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//	p := parser.NewParser(cfg.ParserOptions()...)
package config
