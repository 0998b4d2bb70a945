// Package config loads evaluation and service options.
//
// Values come, in increasing priority, from a YAML config file, a .env file
// and SYSTOLIC_* environment variables, and command-line flags:
//
//	var cfg config.Config
//	err := config.LoadConfig("systolic", &cfg, config.WithFlags(cmd.Flags()))
//	cfg.ApplyDefaults()
//	if err := cfg.ValidateEval(); err != nil {
//	    return err
//	}
//
// Nested keys map to environment variables by replacing dots with
// underscores, e.g. SYSTOLIC_SERVER_ADDR sets server.addr.
package config
