package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile  string
	Ads         string   `validate:"required"`
	Leads       string   `validate:"required"`
	Purchases   string   `validate:"required"`
	ReportName  string   `validate:"required"`
	ReportType  []string `validate:"required,min=1,dive,oneof=xlsx csv json pdf"`
	Dir         string
	Timestamped bool
	TieBreak    string `validate:"oneof=input_order smallest_lead_id"`
	Delimiter   string `validate:"len=1"`
	Upload      string `validate:"omitempty,startswith=s3://"`
	Profile     string
	Region      string
	NoBanner    bool
	Quiet       bool
}
