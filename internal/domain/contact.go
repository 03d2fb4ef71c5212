package domain

// ContactRecord is one output row: a unique email plus the fields derived from it.
type ContactRecord struct {
	Email          string
	CompanyName    string
	HRName         string
	Position       string
	Industry       string
	CompanyType    string
	Location       string
	CompanyWebsite string
}

// Defaults holds the per-run constant columns.
type Defaults struct {
	Position    string `yaml:"position"`
	Industry    string `yaml:"industry"`
	CompanyType string `yaml:"company_type"`
	Location    string `yaml:"location"`
}
