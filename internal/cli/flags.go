package cli

import (
	"github.com/spf13/pflag"

	"github.com/GriffinCanCode/schedpanel/internal/jobs"
)

// fieldFlagSet binds the six job form flags to fields.
func fieldFlagSet(fields *jobs.Fields) *pflag.FlagSet {
	fs := pflag.NewFlagSet("fields", pflag.ContinueOnError)
	fs.StringVarP(&fields.URL, "url", "u", "", "Target page URL")
	fs.StringVarP(&fields.TargetTime, "target-time", "t", "", "Execution time ("+jobs.TargetTimeLayout+")")
	fs.StringVarP(&fields.ButtonKeywords, "keywords", "k", "", "Comma separated button keywords")
	fs.StringVar(&fields.ChromePath, "chrome-path", "", "ChromeDriver path")
	fs.StringVar(&fields.UserDataDir, "user-data-dir", "", "Browser user data directory")
	fs.StringVar(&fields.ProfileName, "profile-name", "", "Browser profile name")
	return fs
}
