package types

// CLIArgs represents the command-line arguments shared by the report commands.
type CLIArgs struct {
	ConfigFile string
	Accounts   []string
	ReportName string
	ReportType []string
	Dir        string
	Chart      bool
	DryRun     bool
	Quiet      bool
}
