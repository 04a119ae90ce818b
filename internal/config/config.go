package config

// Config represents the full application configuration.
type Config struct {
	Output OutputConfig `yaml:"output"`
	Split  SplitConfig  `yaml:"split"`
	Git    GitConfig    `yaml:"git"`
	Store  StoreConfig  `yaml:"store"`
}

// OutputConfig holds defaults for the output filesystem sink.
type OutputConfig struct {
	Directory string `yaml:"directory"` // default target directory
}

// SplitConfig holds defaults for the split pipeline flags.
type SplitConfig struct {
	Strip           int  `yaml:"strip"` // -1 selects auto-detection
	MaskLineNumbers bool `yaml:"maskLineNumbers"`
	SkipHeader      bool `yaml:"skipHeader"`
}

// GitConfig configures the git diff source.
type GitConfig struct {
	RepositoryDir string `yaml:"repositoryDir"`
}

// StoreConfig configures the split manifest store.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}
