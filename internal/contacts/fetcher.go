package contacts

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"slices"

	"github.com/tartampluch/go-almanac/internal/config"
)

// Fetcher retrieves a vCard stream from a remote address.
// The interface lets tests replace the network with an in-memory reader.
type Fetcher interface {
	Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error)
}

// HTTPFetcher downloads vCard files over HTTP(S), typically from a CardDAV
// address book export or a WebDAV share.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher whose client gives up after config.HTTPTimeout.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{
			Timeout: config.HTTPTimeout,
		},
	}
}

// Fetch downloads the vCard file at targetURL.
//
// Only http and https are accepted. Credentials, when given, are sent as
// basic auth. A response that declares a media type other than a vCard or
// generic text/binary payload is refused before any byte is parsed, and the
// body is capped at config.MaxHTTPResponseSize.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL, user, pass string) (io.ReadCloser, error) {
	u, err := parseSourceURL(targetURL)
	if err != nil {
		return nil, err
	}

	// Query strings of shared address books often carry access tokens.
	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, u.Scheme+"://"+u.Host+u.Path),
	)
	log.Debug(config.MsgFetchStart)

	resp, err := f.do(ctx, targetURL, user, pass)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		log.Warn(config.MsgFetchStatus, slog.Int(config.LogKeyStatus, resp.StatusCode))
		return nil, fmt.Errorf("%s: %s", config.ErrFetchStatus, resp.Status)
	}

	contentType := resp.Header.Get(config.HeaderContentType)
	if err := checkVCardMediaType(contentType); err != nil {
		_ = resp.Body.Close()
		log.Warn(config.MsgFetchMediaType, slog.String(config.LogKeyContentType, contentType))
		return nil, err
	}

	log.Info(config.MsgFetchOK,
		slog.Int64(config.LogKeySizeBytes, resp.ContentLength),
		slog.String(config.LogKeyContentType, contentType),
	)

	return &limitedReadCloser{
		Reader: io.LimitReader(resp.Body, config.MaxHTTPResponseSize),
		Closer: resp.Body,
	}, nil
}

func (f *HTTPFetcher) do(ctx context.Context, targetURL, user, pass string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrFetchRequest, err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	req.Header.Set(config.HeaderAccept, config.AcceptVCard)
	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrFetchNetwork, err)
	}
	return resp, nil
}

// parseSourceURL rejects malformed addresses and non-HTTP schemes.
func parseSourceURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}
	return u, nil
}

// checkVCardMediaType accepts a missing Content-Type, the vCard media types
// and the generic types servers fall back to for .vcf files. Anything else,
// typically an HTML login page, is refused.
func checkVCardMediaType(contentType string) error {
	if contentType == "" {
		return nil
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return fmt.Errorf("%s: %q: %w", config.ErrContentType, contentType, err)
	}
	if !slices.Contains(config.VCardMediaTypes, mediaType) {
		return fmt.Errorf("%s: %s", config.ErrContentType, mediaType)
	}
	return nil
}

// limitedReadCloser reads through a size limit but closes the underlying
// body, so the connection is released even when the limit cuts the read.
type limitedReadCloser struct {
	io.Reader
	io.Closer
}
