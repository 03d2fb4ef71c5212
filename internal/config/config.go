// internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"jobhunt-contacts/internal/domain"
)

// Default paths used when neither arguments nor a config file name them.
const (
	DefaultInput  = "docs/jaipur-500-hr-emails.md"
	DefaultOutput = "docs/jaipur-hr-contacts.csv"
)

type Rule struct {
	Label string   `yaml:"label"`
	Any   []string `yaml:"any"`
}

// Tier maps a markdown section heading to a company category label.
type Tier struct {
	Heading string `yaml:"heading"`
	Label   string `yaml:"label"`
}

type Job struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

type Config struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`

	Defaults domain.Defaults `yaml:"defaults"`

	HRNames struct {
		Rules    []Rule `yaml:"rules"`
		Fallback string `yaml:"fallback"`
	} `yaml:"hr_names"`

	Tiers []Tier `yaml:"tiers"`

	Store struct {
		Path     string `yaml:"path"`
		ListName string `yaml:"list_name"`
	} `yaml:"store"`

	Batch struct {
		Concurrency int   `yaml:"concurrency"`
		Jobs        []Job `yaml:"jobs,omitempty"`
	} `yaml:"batch"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Defaults returns the configuration the converter runs with when no file is given.
func Defaults() Config {
	var cfg Config
	cfg.Input = DefaultInput
	cfg.Output = DefaultOutput

	cfg.Defaults = domain.Defaults{
		Position:    "Software Developer",
		Industry:    "Information Technology",
		CompanyType: "Technology Company",
		Location:    "Jaipur, Rajasthan",
	}

	cfg.HRNames.Rules = []Rule{
		{Label: "HR Manager", Any: []string{"hr"}},
		{Label: "Recruitment Team", Any: []string{"career", "recruit"}},
	}
	cfg.HRNames.Fallback = "Hiring Manager"

	cfg.Tiers = []Tier{
		{Heading: "Tier-1: Large National IT Companies", Label: "Large Enterprise"},
		{Heading: "Tier-2: Mid-Size Established Tech Companies", Label: "Mid-Size Company"},
		{Heading: "Tier-3: Growing Startups & Specialized Companies", Label: "Startup/Growing"},
		{Heading: "Tier-4: Web Design & Development Companies", Label: "Web/App Development"},
		{Heading: "Tier-5: Mobile App Development Companies", Label: "Mobile Development"},
		{Heading: "Tier-6: Software Consulting Firms", Label: "Consulting"},
		{Heading: "Tier-7: Product-Based Tech Companies", Label: "Product Company"},
		{Heading: "Tier-8: E-commerce & Digital Marketing", Label: "E-commerce/Marketing"},
	}

	cfg.Store.ListName = "Jaipur HR Contacts"
	cfg.Batch.Concurrency = 4
	cfg.Log.Level = "info"
	cfg.Log.Format = "console"
	return cfg
}

// Load reads a YAML file over Defaults. Keys missing from the file keep their default.
func Load(path string) (Config, error) {
	cfg := Defaults()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
