package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Ads         string   `json:"ads" yaml:"ads" toml:"ads"`
	Leads       string   `json:"leads" yaml:"leads" toml:"leads"`
	Purchases   string   `json:"purchases" yaml:"purchases" toml:"purchases"`
	ReportName  string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType  []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir         string   `json:"dir" yaml:"dir" toml:"dir"`
	Timestamped bool     `json:"timestamped" yaml:"timestamped" toml:"timestamped"`
	TieBreak    string   `json:"tie_break" yaml:"tie_break" toml:"tie_break"`
	Delimiter   string   `json:"delimiter" yaml:"delimiter" toml:"delimiter"`
	Upload      string   `json:"upload" yaml:"upload" toml:"upload"`
	Profile     string   `json:"profile" yaml:"profile" toml:"profile"`
	Region      string   `json:"region" yaml:"region" toml:"region"`
}
