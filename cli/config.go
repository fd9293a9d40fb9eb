package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Profile is a named widget connection
type Profile struct {
	URL         string `yaml:"url"`
	Description string `yaml:"description,omitempty"`
	Token       string `yaml:"token,omitempty"`
	AdminKey    string `yaml:"admin_key,omitempty"`
}

// Config is the widget profile file
type Config struct {
	DefaultProfile string             `yaml:"default_profile"`
	Profiles       map[string]Profile `yaml:"profiles"`
	configPath     string
}

// getConfigPath returns ~/.savecart/config.yaml, creating the directory
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	configDir := filepath.Join(homeDir, ".savecart")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", err
	}

	return filepath.Join(configDir, "config.yaml"), nil
}

// LoadConfig loads the profile file from the user's home directory
func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFrom(configPath)
}

// LoadConfigFrom loads profiles from path. A missing file is created with a "local" profile.
func LoadConfigFrom(configPath string) (*Config, error) {
	config := &Config{
		configPath: configPath,
		Profiles:   make(map[string]Profile),
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config.DefaultProfile = "local"
		config.Profiles["local"] = Profile{
			URL:         "http://localhost:8080",
			Description: "Local savecart server",
		}
		if err := config.Save(); err != nil {
			return nil, err
		}
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("invalid profile file %s: %w", configPath, err)
	}
	if config.Profiles == nil {
		config.Profiles = make(map[string]Profile)
	}

	config.configPath = configPath
	return config, nil
}

// Save writes the profile file; it may hold tokens, so it is user-readable only
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(c.configPath, data, 0600)
}

// AddProfile adds or replaces a profile
func (c *Config) AddProfile(name string, p Profile) error {
	if name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}
	if p.URL == "" {
		return fmt.Errorf("profile URL cannot be empty")
	}

	c.Profiles[name] = p
	if c.DefaultProfile == "" {
		c.DefaultProfile = name
	}
	return c.Save()
}

// RemoveProfile removes a profile, picking another default if needed
func (c *Config) RemoveProfile(name string) error {
	if _, exists := c.Profiles[name]; !exists {
		return fmt.Errorf("profile '%s' not found", name)
	}

	delete(c.Profiles, name)

	if c.DefaultProfile == name {
		c.DefaultProfile = ""
		if names := c.Names(); len(names) > 0 {
			c.DefaultProfile = names[0]
		}
	}
	return c.Save()
}

// GetProfile returns a profile by name; "" selects the default
func (c *Config) GetProfile(name string) (*Profile, error) {
	if name == "" {
		name = c.DefaultProfile
	}

	p, exists := c.Profiles[name]
	if !exists {
		return nil, fmt.Errorf("profile '%s' not found", name)
	}
	return &p, nil
}

// Names returns profile names in sorted order
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
