package main

import (
	"context"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-almanac/internal/annotate"
	"github.com/tartampluch/go-almanac/internal/civil"
	"github.com/tartampluch/go-almanac/internal/config"
	"github.com/tartampluch/go-almanac/internal/contacts"
	"github.com/tartampluch/go-almanac/internal/grid"
	"github.com/tartampluch/go-almanac/internal/locale"
)

// cli carries the flag values and injected dependencies shared by the
// commands.
type cli struct {
	out     io.Writer
	clock   civil.Clock
	fetcher contacts.Fetcher

	initLogging func(debug bool) io.Closer
	logCloser   io.Closer

	configPath string
	debug      bool
	weekStart  int
	language   string
	resolvers  []string
	noLeading  bool
	noTrailing bool
	port       string
}

func newCLI(out io.Writer) *cli {
	return &cli{
		out:     out,
		clock:   civil.RealClock{},
		fetcher: contacts.NewHTTPFetcher(),
	}
}

func (c *cli) close() {
	if c.logCloser != nil {
		_ = c.logCloser.Close()
	}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           config.BinaryName,
		Short:         config.ShortRoot,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.initLogging != nil {
				c.logCloser = c.initLogging(c.debug)
			}
		},
	}
	root.SetOut(c.out)

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, config.FlagConfig, defaultSettingsPath(), config.FlagDescConfig)
	flags.BoolVar(&c.debug, config.FlagDebug, false, config.FlagDescDebug)
	flags.IntVar(&c.weekStart, config.FlagWeekStart, config.DefaultWeekStart, config.FlagDescWeekStart)
	flags.StringVar(&c.language, config.FlagLanguage, config.DefaultLanguage, config.FlagDescLanguage)
	flags.StringSliceVar(&c.resolvers, config.FlagResolvers, slices.Clone(config.DefaultResolvers), config.FlagDescResolvers)
	flags.BoolVar(&c.noLeading, config.FlagNoLeading, false, config.FlagDescNoLeading)
	flags.BoolVar(&c.noTrailing, config.FlagNoTrailing, false, config.FlagDescNoTrailing)

	root.AddCommand(
		newMonthCmd(c),
		newICSCmd(c),
		newServeCmd(c),
		newVersionCmd(),
	)
	return root
}

// settings loads the settings file and applies the flags the user set.
func (c *cli) settings(cmd *cobra.Command) (*config.Settings, error) {
	s, err := config.LoadSettings(c.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed(config.FlagWeekStart) {
		s.WeekStart = c.weekStart
	}
	if flags.Changed(config.FlagLanguage) {
		s.Language = c.language
	}
	if flags.Changed(config.FlagResolvers) {
		s.Resolvers = slices.Clone(c.resolvers)
	}
	if flags.Changed(config.FlagNoLeading) {
		s.FillLeading = !c.noLeading
	}
	if flags.Changed(config.FlagNoTrailing) {
		s.FillTrailing = !c.noTrailing
	}
	if flags.Changed(config.FlagPort) {
		s.Port = c.port
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// gridOptions turns settings into builder options. The birthday resolver
// loads its contacts only when the chain names it.
func (c *cli) gridOptions(ctx context.Context, s *config.Settings) (grid.Options, error) {
	tr, err := locale.New(s.Language)
	if err != nil {
		return grid.Options{}, err
	}

	extra := map[string]annotate.Resolver{}
	if slices.Contains(s.Resolvers, config.ResolverBirthday) {
		r, err := c.birthdayResolver(ctx, s.Contacts)
		if err != nil {
			return grid.Options{}, err
		}
		extra[config.ResolverBirthday] = r
	}

	chain, err := annotate.ChainFromNames(s.Resolvers, extra)
	if err != nil {
		return grid.Options{}, err
	}

	return grid.Options{
		WeekStart:      s.WeekStart,
		FillLeading:    s.FillLeading,
		FillTrailing:   s.FillTrailing,
		HighlightToday: s.HighlightToday,
		Titles:         tr.WeekdayTitles(),
		Chain:          chain,
	}, nil
}

func (c *cli) birthdayResolver(ctx context.Context, cs config.ContactsSettings) (*contacts.Resolver, error) {
	if cs.Mode == "" {
		return contacts.NewResolver(nil), nil
	}

	src := contacts.SourceFromSettings(cs)
	if src.Mode == config.SourceModeWeb {
		pass, err := contacts.PasswordFromKeyring(src.User)
		if err != nil {
			return nil, err
		}
		src.Pass = pass
	}

	birthdays, err := contacts.Load(ctx, src, c.fetcher)
	if err != nil {
		return nil, err
	}
	r := contacts.NewResolver(birthdays)
	slog.Debug(config.MsgBirthdayIndex,
		config.LogKeyComponent, config.CompContacts,
		config.LogKeyCount, len(birthdays),
		config.LogKeyDays, r.Len())
	return r, nil
}

// referenceDate parses the optional date argument, defaulting to today.
func (c *cli) referenceDate(args []string) (civil.Date, error) {
	if len(args) == 0 {
		return civil.Today(c.clock), nil
	}
	return civil.Parse(args[0])
}

// builder resolves settings and options in one step.
func (c *cli) builder(cmd *cobra.Command) (*grid.Builder, *config.Settings, error) {
	s, err := c.settings(cmd)
	if err != nil {
		return nil, nil, err
	}
	opts, err := c.gridOptions(cmd.Context(), s)
	if err != nil {
		return nil, nil, err
	}
	b, err := grid.NewBuilder(opts)
	if err != nil {
		return nil, nil, err
	}
	return b, s, nil
}
