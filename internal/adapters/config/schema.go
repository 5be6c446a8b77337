package config

// File is the on-disk shape of .pnprc.yml and .pnprc.toml.
// Unset keys keep their default.
type File struct {
	StateFile       *string  `yaml:"stateFile" toml:"stateFile"`
	Extensions      []string `yaml:"extensions" toml:"extensions"`
	MaxOpenArchives *int     `yaml:"maxOpenArchives" toml:"maxOpenArchives"`
	ArchiveBackend  *string  `yaml:"archiveBackend" toml:"archiveBackend"`
	LogFormat       *string  `yaml:"logFormat" toml:"logFormat"`
	Fallback        *bool    `yaml:"fallback" toml:"fallback"`
}
