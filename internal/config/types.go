package config

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .netlab.yaml configuration file.
type Config struct {
	Version int           `yaml:"version" mapstructure:"version"`
	VSphere VSphereConfig `yaml:"vsphere" mapstructure:"vsphere"`
	Upload  UploadConfig  `yaml:"upload" mapstructure:"upload"`
	Batch   BatchConfig   `yaml:"batch" mapstructure:"batch"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
}

// VSphereConfig holds connection defaults for the management host.
// Values here seed the persistent option set; flags on the command line
// always win.
type VSphereConfig struct {
	// Host is the management host to dial. Can be a hostname, user@hostname,
	// or an SSH config alias.
	Host string `yaml:"host" mapstructure:"host"`

	// Port for the SSH connection. Zero means the default (22) or whatever
	// the SSH config alias resolves to.
	Port int `yaml:"port" mapstructure:"port"`

	// User for authentication against the management host.
	User string `yaml:"user" mapstructure:"user"`
}

// UploadConfig holds defaults for the upload action.
type UploadConfig struct {
	// Folder is the inventory folder new VMs land in.
	Folder string `yaml:"folder" mapstructure:"folder"`

	// Network the uploaded VM's adapter attaches to.
	Network string `yaml:"network" mapstructure:"network"`

	// Provisioning mode: "thin" or "thick".
	Provisioning string `yaml:"provisioning" mapstructure:"provisioning"`
}

// BatchConfig controls batch file interpretation.
type BatchConfig struct {
	// Comment is the to-end-of-line comment marker. Single character.
	Comment string `yaml:"comment" mapstructure:"comment"`
}

// OutputConfig controls terminal output formatting.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		VSphere: VSphereConfig{
			Port: 22,
		},
		Upload: UploadConfig{
			Provisioning: "thin",
		},
		Batch: BatchConfig{
			Comment: "#",
		},
		Output: OutputConfig{
			Color: "auto",
		},
	}
}
