package contacts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-almanac/internal/config"
)

// Source tells Load where to read the vCards.
type Source struct {
	Mode string // config.SourceModeLocal or config.SourceModeWeb
	Path string
	URL  string
	User string
	Pass string
}

// SourceFromSettings converts the contacts settings; the password is filled
// in by the caller.
func SourceFromSettings(s config.ContactsSettings) Source {
	return Source{Mode: s.Mode, Path: s.Path, URL: s.URL, User: s.User}
}

// Load reads every card with a usable BDAY from src. Malformed cards and
// unparseable dates are skipped.
func Load(ctx context.Context, src Source, fetcher Fetcher) ([]Birthday, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompContacts,
		config.LogKeyMode, src.Mode,
	)

	reader, err := open(ctx, src, fetcher)
	if err != nil {
		// A cancelled refresh is not a broken source.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = reader.Close() }()

	birthdays, err := decode(ctx, reader)
	if err != nil {
		return nil, err
	}

	log.Info(config.MsgContactsLoad,
		config.LogKeyCount, len(birthdays),
		config.LogKeyDuration, time.Since(start).Milliseconds())
	return birthdays, nil
}

// open returns the raw vCard stream for src. Web sources go through fetcher so
// tests can serve the cards from memory.
func open(ctx context.Context, src Source, fetcher Fetcher) (io.ReadCloser, error) {
	switch src.Mode {
	case config.SourceModeLocal:
		if src.Path == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(src.Path)
	case config.SourceModeWeb:
		if src.URL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return fetcher.Fetch(ctx, src.URL, src.User, src.Pass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, src.Mode)
	}
}

// decode parses the stream card by card. A card that fails to parse is
// logged and skipped; an error from the underlying reader aborts the load.
func decode(ctx context.Context, r io.Reader) ([]Birthday, error) {
	stream := &streamReader{r: r}
	decoder := vcard.NewDecoder(stream)
	var birthdays []Birthday

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := decoder.Decode()
		if stream.err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, stream.err)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompContacts,
				config.LogKeyError, err)
			continue
		}

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}
		date, yearKnown, err := parseDate(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompContacts,
				config.LogKeyValue, bday.Value)
			continue
		}

		// The year only matters for ages; a --MM-DD birthday keeps Year at zero.
		b := Birthday{Name: cardName(card), Month: date.Month(), Day: date.Day()}
		if yearKnown {
			b.Year = date.Year()
		}
		birthdays = append(birthdays, b)
	}
	return birthdays, nil
}

// cardName prefers FN, then N, then a fixed fallback.
func cardName(card vcard.Card) string {
	if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
		return fn.Value
	}
	if n := card.Get(config.VCardN); n != nil && n.Value != "" {
		return n.Value
	}
	return config.FallbackName
}

// parseDate handles the BDAY layouts seen in the wild.
func parseDate(value string) (time.Time, bool, error) {
	formatsWithYear := []string{
		config.DateFormatISO,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	// --MM-DD has no year; parse inside a leap year so --02-29 survives.
	for _, f := range []string{config.DateFormatNoYearD, config.DateFormatNoYearB} {
		if t, err := time.Parse(f, value); err == nil {
			return time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), false, nil
		}
	}
	return time.Time{}, false, errors.New(config.ErrDateParse)
}

// streamReader remembers the first I/O failure of the wrapped reader, which
// the vCard decoder would otherwise report like a syntax error.
type streamReader struct {
	r   io.Reader
	err error
}

func (s *streamReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && s.err == nil {
		s.err = err
	}
	return n, err
}
