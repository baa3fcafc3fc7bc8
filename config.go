package pages

import (
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/rs/zerolog"
)

// DefaultTimeout is the inactivity timeout applied when none is configured.
const DefaultTimeout = 180 * time.Second

// DefaultConfig returns the configuration a paginator starts from before
// ConfigOpt(s) are applied.
func DefaultConfig() *Config {
	return &Config{
		ShowDisabled:      true,
		ShowIndicator:     true,
		MenuPlaceholder:   "Select Page Group",
		DisableOnTimeout:  true,
		UseDefaultButtons: true,
		Timeout:           DefaultTimeout,
		CustomIDPrefix:    "pages",
		Logger:            zerolog.Nop(),
	}
}

type Config struct {
	// ShowDisabled includes hidden navigation buttons in the render as
	// disabled instead of omitting them.
	ShowDisabled bool
	// ShowIndicator includes the page indicator button.
	ShowIndicator bool
	// ShowMenu includes a select menu for switching between page groups.
	ShowMenu bool
	// MenuPlaceholder is shown in the group menu while nothing is selected.
	MenuPlaceholder string
	// AuthorCheck restricts interactions to the configured Users.
	AuthorCheck bool
	// DisableOnTimeout disables all items when the inactivity timeout fires.
	DisableOnTimeout bool
	// UseDefaultButtons installs the default first/prev/indicator/next/last
	// button set.
	UseDefaultButtons bool
	// DefaultButtonRow is the action row the default buttons are placed on.
	// Has no effect on custom buttons.
	DefaultButtonRow int
	// LoopPages wraps prev/next navigation around the first/last page.
	LoopPages bool
	// CustomView items are appended below the pagination components. A page
	// carrying its own components replaces these for that render.
	CustomView []discord.ContainerComponent
	// Timeout is the inactivity duration before the paginator stops
	// accepting input. Zero means never.
	Timeout time.Duration
	// CustomButtons replace the default button set when UseDefaultButtons is
	// false.
	CustomButtons []*Button
	// TriggerOnDisplay invokes a page's OnDisplay callback whenever the page
	// is rendered.
	TriggerOnDisplay bool
	// Users are the principals allowed to interact when AuthorCheck is on.
	Users []snowflake.ID

	CustomIDPrefix string
	Logger         zerolog.Logger
}

type ConfigOpt func(config *Config)

// Apply applies the given ConfigOpt(s) to the Config.
func (c *Config) Apply(opts []ConfigOpt) {
	for _, opt := range opts {
		opt(c)
	}
}

func WithShowDisabled(showDisabled bool) ConfigOpt {
	return func(config *Config) {
		config.ShowDisabled = showDisabled
	}
}

func WithShowIndicator(showIndicator bool) ConfigOpt {
	return func(config *Config) {
		config.ShowIndicator = showIndicator
	}
}

func WithShowMenu(showMenu bool) ConfigOpt {
	return func(config *Config) {
		config.ShowMenu = showMenu
	}
}

func WithMenuPlaceholder(placeholder string) ConfigOpt {
	return func(config *Config) {
		config.MenuPlaceholder = placeholder
	}
}

func WithAuthorCheck(authorCheck bool) ConfigOpt {
	return func(config *Config) {
		config.AuthorCheck = authorCheck
	}
}

func WithDisableOnTimeout(disableOnTimeout bool) ConfigOpt {
	return func(config *Config) {
		config.DisableOnTimeout = disableOnTimeout
	}
}

func WithDefaultButtons(useDefaultButtons bool) ConfigOpt {
	return func(config *Config) {
		config.UseDefaultButtons = useDefaultButtons
	}
}

func WithDefaultButtonRow(row int) ConfigOpt {
	return func(config *Config) {
		config.DefaultButtonRow = row
	}
}

func WithLoopPages(loopPages bool) ConfigOpt {
	return func(config *Config) {
		config.LoopPages = loopPages
	}
}

func WithCustomView(components ...discord.ContainerComponent) ConfigOpt {
	return func(config *Config) {
		config.CustomView = components
	}
}

func WithTimeout(timeout time.Duration) ConfigOpt {
	return func(config *Config) {
		config.Timeout = timeout
	}
}

func WithCustomButtons(buttons ...*Button) ConfigOpt {
	return func(config *Config) {
		config.UseDefaultButtons = false
		config.CustomButtons = buttons
	}
}

func WithTriggerOnDisplay(triggerOnDisplay bool) ConfigOpt {
	return func(config *Config) {
		config.TriggerOnDisplay = triggerOnDisplay
	}
}

func WithUsers(users ...snowflake.ID) ConfigOpt {
	return func(config *Config) {
		config.AuthorCheck = true
		config.Users = users
	}
}

func WithCustomIDPrefix(prefix string) ConfigOpt {
	return func(config *Config) {
		config.CustomIDPrefix = prefix
	}
}

func WithLogger(logger zerolog.Logger) ConfigOpt {
	return func(config *Config) {
		config.Logger = logger
	}
}
