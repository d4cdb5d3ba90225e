package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
	"github.com/chunpat/life-pulse-ai/pkg/usecase"
)

// AppConfig represents the application configuration. Values come from an
// optional TOML file with flag overrides on top.
type AppConfig struct {
	path         string
	guestMaxLogs int
	timezone     string
	language     string

	Language   string          `toml:"language"`
	Timezone   string          `toml:"timezone"`
	Quota      Quota           `toml:"quota"`
	Categories []CategoryLabel `toml:"category"`
}

// Quota holds write-limit settings
type Quota struct {
	GuestMaxLogs int `toml:"guest_max_logs"`
}

// CategoryLabel maps a category enum value to a localized display label
type CategoryLabel struct {
	ID    string `toml:"id"`
	Label string `toml:"label"`
}

// Validate checks if the CategoryLabel is valid
func (c *CategoryLabel) Validate() error {
	if _, err := types.ParseCategory(c.ID); err != nil {
		return goerr.Wrap(err, "invalid category ID", goerr.V("id", c.ID))
	}
	if c.Label == "" {
		return goerr.New("category label is required", goerr.V("id", c.ID))
	}
	return nil
}

// AppSettings is the resolved application configuration
type AppSettings struct {
	Labels       map[types.Category]string
	Location     *time.Location
	GuestMaxLogs int
	Language     string
}

// Flags returns CLI flags for application configuration
func (a *AppConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to TOML configuration file",
			Sources:     cli.EnvVars("LIFEPULSE_CONFIG"),
			Destination: &a.path,
		},
		&cli.IntFlag{
			Name:        "guest-max-logs",
			Usage:       "Maximum number of stored logs for the guest user",
			Value:       usecase.DefaultGuestMaxLogs,
			Sources:     cli.EnvVars("LIFEPULSE_GUEST_MAX_LOGS"),
			Destination: &a.guestMaxLogs,
		},
		&cli.StringFlag{
			Name:        "timezone",
			Usage:       "IANA timezone for period boundaries (defaults to system local)",
			Sources:     cli.EnvVars("LIFEPULSE_TIMEZONE"),
			Destination: &a.timezone,
		},
		&cli.StringFlag{
			Name:        "language",
			Usage:       "Language for AI-generated text (e.g. en, zh)",
			Value:       "en",
			Sources:     cli.EnvVars("LIFEPULSE_LANGUAGE"),
			Destination: &a.language,
		},
	}
}

// Configure loads the TOML file (when given) and resolves the effective
// settings. Flags that were set explicitly take precedence over the file.
func (a *AppConfig) Configure(c *cli.Command) (*AppSettings, error) {
	if a.path != "" {
		raw, err := os.ReadFile(a.path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", a.path))
		}
		if err := toml.Unmarshal(raw, a); err != nil {
			return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", a.path))
		}
	}

	settings := &AppSettings{
		Labels:       map[types.Category]string{},
		Location:     time.Local,
		GuestMaxLogs: a.guestMaxLogs,
		Language:     a.language,
	}

	for _, label := range a.Categories {
		if err := label.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid category label")
		}
		category := types.Category(label.ID)
		if _, ok := settings.Labels[category]; ok {
			return nil, goerr.New("duplicate category label", goerr.V("id", label.ID))
		}
		settings.Labels[category] = label.Label
	}

	if a.Quota.GuestMaxLogs > 0 && !c.IsSet("guest-max-logs") {
		settings.GuestMaxLogs = a.Quota.GuestMaxLogs
	}
	if a.Language != "" && !c.IsSet("language") {
		settings.Language = a.Language
	}

	tz := a.timezone
	if tz == "" {
		tz = a.Timezone
	}
	if tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid timezone", goerr.V("timezone", tz))
		}
		settings.Location = loc
	}

	return settings, nil
}
