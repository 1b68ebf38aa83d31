package config

const (
	defaultConfigPath    = "~/.config/gabraconv/config.toml"
	projectConfigName    = "gabraconv.toml"
	defaultOutDir        = "gabra-export"
	defaultExporter      = "csv"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	missingLexemeCleaner = "missing_lexeme"
)

// Default returns a Config populated with repository defaults. The wordform
// chain starts with missing_lexeme because the csv wordform exporter cannot
// write a row whose lexeme was skipped.
func Default() Config {
	return Config{
		Paths: Paths{
			OutDir: defaultOutDir,
		},
		Lexemes: Kind{
			Cleaners: []string{},
			Exporter: defaultExporter,
		},
		Wordforms: Kind{
			Cleaners: []string{missingLexemeCleaner},
			Exporter: defaultExporter,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
