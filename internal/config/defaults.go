package config

const (
	defaultOutputDir           = "~/.local/share/brandlink/output"
	defaultLogDir              = "~/.local/share/brandlink/logs"
	defaultRegistryBackend     = "sqlite"
	defaultSQLitePath          = "~/.local/share/brandlink/registry.db"
	defaultCollection          = "brands"
	defaultAutoAcceptThreshold = 90.0
	defaultReviewThreshold     = 80.0
	defaultTopMatches          = 5
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Registry: Registry{
			Backend:    defaultRegistryBackend,
			SQLitePath: defaultSQLitePath,
			Collection: defaultCollection,
		},
		Matching: Matching{
			AutoAcceptThreshold: defaultAutoAcceptThreshold,
			ReviewThreshold:     defaultReviewThreshold,
			RejectThreshold:     defaultReviewThreshold,
			TopMatches:          defaultTopMatches,
		},
		Contacts: Contacts{
			FieldMap: DefaultContactFieldMap(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// DefaultContactFieldMap maps the extraction CSV columns onto the registry
// social keys they feed.
func DefaultContactFieldMap() map[string]string {
	return map[string]string{
		"twitter_url":  "twitter",
		"facebook_url": "facebook",
		"bluesky_url":  "bluesky",
		"ir_email":     "ir_email",
		"cs_email":     "cs_email",
		"ir_page":      "ir_page",
		"cs_page":      "cs_page",
		"domain":       "website",
	}
}
