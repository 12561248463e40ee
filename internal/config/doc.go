// Package config provides configuration for the harness.
//
// Configuration is resolved in three steps, each overriding the last:
//
//  1. Built-in defaults (Default)
//  2. A settings file in TOML or YAML, chosen by extension (Load)
//  3. HARNESS_* environment variables (ApplyEnv)
//
// # Example settings.toml
//
//	[command]
//	separator = "\n"
//	max_line_length = 1024
//	max_tokens = 64
//
//	[window]
//	max_windows = 8
//	width = 1280
//	height = 720
//
//	[log]
//	level = "debug"
//	format = "json"
//
// # Environment
//
// Every field can be overridden from the environment. Variable names are the
// section and key in upper case, joined by underscores and prefixed with
// HARNESS_, for example HARNESS_LOG_LEVEL or HARNESS_COMMAND_MAX_TOKENS.
package config
