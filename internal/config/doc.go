// Package config loads, validates, and normalizes brandlink configuration.
//
// Configuration lives in a TOML file (default ~/.config/brandlink/config.toml)
// with repository defaults applied underneath, so a missing file still
// yields a runnable config for local sqlite-backed work. Paths are
// tilde-expanded and made absolute during load.
package config
