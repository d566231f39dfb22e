package config

// Defaults holds values applied when the command line leaves them unset.
type Defaults struct {
	// Formats are the default report types, e.g. ["CSV", "HTML"].
	Formats []string `yaml:"formats,omitempty"`

	// User is the default viewing user name.
	User string `yaml:"user,omitempty"`

	// Role is the default role, e.g. "ADMIN".
	Role string `yaml:"role,omitempty"`

	// Escape enables escaping of interpolated values.
	Escape bool `yaml:"escape,omitempty"`

	// OutputDir is the default output directory.
	OutputDir string `yaml:"outputDir,omitempty"`
}

// UserConfig holds settings for one named user.
type UserConfig struct {
	// Role is the user's role, e.g. "ADMIN" or "USER".
	Role string `yaml:"role,omitempty"`

	// DisplayName replaces the user name in rendered reports.
	DisplayName string `yaml:"displayName,omitempty"`
}

// File represents the structure of the .reportgen configuration file.
type File struct {
	// Defaults contains values used when flags are not given.
	Defaults Defaults `yaml:"defaults,omitempty"`

	// Users maps user names to their settings.
	Users map[string]UserConfig `yaml:"users,omitempty"`
}

// GetUser returns the settings for name merged over the defaults.
// The returned DisplayName falls back to name itself.
func (cf *File) GetUser(name string) UserConfig {
	result := UserConfig{
		Role:        cf.Defaults.Role,
		DisplayName: name,
	}

	if userConfig, ok := cf.Users[name]; ok {
		if userConfig.Role != "" {
			result.Role = userConfig.Role
		}
		if userConfig.DisplayName != "" {
			result.DisplayName = userConfig.DisplayName
		}
	}

	return result
}
