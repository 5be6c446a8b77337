package domain

// DefaultStateFile is the artifact name discovered upward from the working directory.
const DefaultStateFile = ".pnp.data.json"

// DefaultMaxOpenArchives bounds the number of archive handles kept open at once.
const DefaultMaxOpenArchives = 80

// DefaultExtensions are probed, in order, when a qualified path does not name a file.
var DefaultExtensions = []string{".js", ".json", ".node"}

// LogFormat selects the log handler.
type LogFormat string

const (
	// LogFormatPretty renders coloured human readable lines.
	LogFormatPretty LogFormat = "pretty"
	// LogFormatJSON renders one JSON object per record.
	LogFormatJSON LogFormat = "json"
)

// Config holds the resolver process configuration.
type Config struct {
	// Path is the file the configuration was read from, empty when defaults are used.
	Path string

	StateFile       string
	Extensions      []string
	MaxOpenArchives int
	ArchiveBackend  ArchiveBackend
	LogFormat       LogFormat

	// Fallback overrides the artifact's enableFallback when set.
	Fallback *bool
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *Config {
	return &Config{
		StateFile:       DefaultStateFile,
		Extensions:      append([]string(nil), DefaultExtensions...),
		MaxOpenArchives: DefaultMaxOpenArchives,
		LogFormat:       LogFormatPretty,
	}
}
