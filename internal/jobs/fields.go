package jobs

import "github.com/GriffinCanCode/schedpanel/internal/infrastructure/config"

// TargetTimeLayout is the conventional target_time format. The panel
// never enforces it; the backend parses it.
const TargetTimeLayout = "2006-01-02 15:04:05"

// Form field names expected by the backend's /run endpoint.
const (
	FieldURL            = "url"
	FieldTargetTime     = "target_time"
	FieldButtonKeywords = "button_keywords"
	FieldChromePath     = "chrome_path"
	FieldUserDataDir    = "user_data_dir"
	FieldProfileName    = "profile_name"
)

// Fields is a snapshot of the six job form values. It is passed by value
// so a submission never observes later edits.
type Fields struct {
	URL            string `yaml:"url" toml:"url"`
	TargetTime     string `yaml:"target_time" toml:"target_time"`
	ButtonKeywords string `yaml:"button_keywords" toml:"button_keywords"`
	ChromePath     string `yaml:"chrome_path" toml:"chrome_path"`
	UserDataDir    string `yaml:"user_data_dir" toml:"user_data_dir"`
	ProfileName    string `yaml:"profile_name" toml:"profile_name"`
}

// FromConfig seeds Fields from the environment-driven form defaults.
func FromConfig(cfg config.FormConfig) Fields {
	return Fields{
		URL:            cfg.URL,
		TargetTime:     cfg.TargetTime,
		ButtonKeywords: cfg.ButtonKeywords,
		ChromePath:     cfg.ChromePath,
		UserDataDir:    cfg.UserDataDir,
		ProfileName:    cfg.ProfileName,
	}
}

// FormData returns the multipart field map, keyed by wire name.
func (f Fields) FormData() map[string]string {
	return map[string]string{
		FieldURL:            f.URL,
		FieldTargetTime:     f.TargetTime,
		FieldButtonKeywords: f.ButtonKeywords,
		FieldChromePath:     f.ChromePath,
		FieldUserDataDir:    f.UserDataDir,
		FieldProfileName:    f.ProfileName,
	}
}

// Merge returns f with every non-empty value of other applied on top.
func (f Fields) Merge(other Fields) Fields {
	pick := func(base, override string) string {
		if override != "" {
			return override
		}
		return base
	}
	return Fields{
		URL:            pick(f.URL, other.URL),
		TargetTime:     pick(f.TargetTime, other.TargetTime),
		ButtonKeywords: pick(f.ButtonKeywords, other.ButtonKeywords),
		ChromePath:     pick(f.ChromePath, other.ChromePath),
		UserDataDir:    pick(f.UserDataDir, other.UserDataDir),
		ProfileName:    pick(f.ProfileName, other.ProfileName),
	}
}
