package contacts_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-almanac/internal/config"
	"github.com/tartampluch/go-almanac/internal/contacts"
)

// MockFetcher simulates the network layer.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

const sampleCards = `BEGIN:VCARD
VERSION:4.0
FN:张三
BDAY:1990-05-20
END:VCARD
BEGIN:VCARD
VERSION:3.0
N:Doe
BDAY:--0229
END:VCARD
BEGIN:VCARD
VERSION:3.0
FN:No Birthday
END:VCARD
BEGIN:VCARD
VERSION:3.0
FN:Bad Date
BDAY:someday
END:VCARD
BEGIN:VCARD
VERSION:3.0
BDAY:19801231
END:VCARD`

func TestLoad_Local(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.vcf")
	require.NoError(t, os.WriteFile(path, []byte(sampleCards), config.FilePermUserRW))

	got, err := contacts.Load(context.Background(), contacts.Source{Mode: config.SourceModeLocal, Path: path}, nil)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, contacts.Birthday{Name: "张三", Month: time.May, Day: 20, Year: 1990}, got[0])

	assert.Equal(t, "Doe", got[1].Name)
	assert.Equal(t, time.February, got[1].Month)
	assert.Equal(t, 29, got[1].Day)
	assert.Zero(t, got[1].Year, "--0229 carries no year")

	assert.Equal(t, config.FallbackName, got[2].Name)
	assert.Equal(t, 1980, got[2].Year)
}

func TestLoad_Web(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, "https://dav.example.com/card.vcf", "bob", "pw").
		Return(io.NopCloser(strings.NewReader(sampleCards)), nil)

	src := contacts.Source{Mode: config.SourceModeWeb, URL: "https://dav.example.com/card.vcf", User: "bob", Pass: "pw"}
	got, err := contacts.Load(context.Background(), src, fetcher)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	fetcher.AssertExpectations(t)
}

func TestLoad_Web_NetworkError(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("network unreachable"))

	_, err := contacts.Load(context.Background(), contacts.Source{Mode: config.SourceModeWeb, URL: "http://x"}, fetcher)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrVCardParse)
	assert.Contains(t, err.Error(), "network unreachable")
}

func TestLoad_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     contacts.Source
		fetcher contacts.Fetcher
		wantErr string
	}{
		{"Local without path", contacts.Source{Mode: config.SourceModeLocal}, nil, config.ErrLocalPathEmpty},
		{"Web without url", contacts.Source{Mode: config.SourceModeWeb}, nil, config.ErrWebURLEmpty},
		{"Web without fetcher", contacts.Source{Mode: config.SourceModeWeb, URL: "http://x"}, nil, config.ErrFetcherMissing},
		{"Unknown mode", contacts.Source{Mode: "ftp"}, nil, config.ErrModeUnsupport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := contacts.Load(context.Background(), tt.src, tt.fetcher)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_ContextCancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.vcf")
	require.NoError(t, os.WriteFile(path, []byte(sampleCards), config.FilePermUserRW))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := contacts.Load(ctx, contacts.Source{Mode: config.SourceModeLocal, Path: path}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSourceFromSettings(t *testing.T) {
	src := contacts.SourceFromSettings(config.ContactsSettings{Mode: config.SourceModeWeb, URL: "http://x", User: "u"})
	assert.Equal(t, contacts.Source{Mode: config.SourceModeWeb, URL: "http://x", User: "u"}, src)
}

// failingBody fails every read, like a connection reset mid download.
type failingBody struct {
	reads int
}

var errConnReset = errors.New("connection reset by peer")

func (b *failingBody) Read([]byte) (int, error) {
	b.reads++
	return 0, errConnReset
}

func TestLoad_ReadErrorAborts(t *testing.T) {
	body := &failingBody{}
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(io.NopCloser(body), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := contacts.Load(ctx, contacts.Source{Mode: config.SourceModeWeb, URL: "http://x"}, fetcher)
	require.Error(t, err)
	assert.ErrorIs(t, err, errConnReset)
	assert.NotErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), config.ErrVCardParse)
	assert.Less(t, body.reads, 10, "a broken stream must not be retried in a loop")
}

func TestLoad_ReadErrorAfterValidCards(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(io.NopCloser(io.MultiReader(strings.NewReader(sampleCards), &failingBody{})), nil)

	got, err := contacts.Load(context.Background(), contacts.Source{Mode: config.SourceModeWeb, URL: "http://x"}, fetcher)
	require.Error(t, err)
	assert.ErrorIs(t, err, errConnReset)
	assert.Nil(t, got)
}
