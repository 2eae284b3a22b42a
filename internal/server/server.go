// Package server publishes the calendar feed over HTTP on localhost.
package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-almanac/internal/civil"
	"github.com/tartampluch/go-almanac/internal/config"
	"github.com/tartampluch/go-almanac/internal/lunar"
)

// MonthFunc renders the feed of the month containing the given date.
type MonthFunc func(ctx context.Context, month civil.Date) ([]byte, error)

// cacheItem is an encoded feed with its validators precomputed.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123
}

// FeedServer serves the current month feed from a cache and other months
// on demand.
type FeedServer struct {
	// Readers vastly outnumber the refresh loop, so the cache is swapped
	// atomically instead of guarded by a lock.
	cache atomic.Pointer[cacheItem]
	Port  string
	Month MonthFunc // nil disables the month route
}

// NewFeedServer creates a server bound to port on localhost.
func NewFeedServer(port string, month MonthFunc) *FeedServer {
	return &FeedServer{
		Port:  port,
		Month: month,
	}
}

// Handler returns the routes of the server.
func (s *FeedServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot, s.handleFeed)
	mux.HandleFunc(config.RouteMonth, s.handleMonth)
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *FeedServer) Start(ctx context.Context) error {
	if err := config.ValidatePort(s.Port); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces the feed served on the root route.
func (s *FeedServer) Update(data []byte) {
	item := newCacheItem(data, time.Now())
	s.cache.Store(item)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, item.etag,
	)
}

func newCacheItem(data []byte, modified time.Time) *cacheItem {
	hash := sha256.Sum256(data)
	return &cacheItem{
		data:         data,
		etag:         fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		lastModified: modified.UTC().Format(http.TimeFormat),
	}
}

// handleFeed serves the cached current-month feed, or 503 until the first
// refresh lands.
func (s *FeedServer) handleFeed(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r) {
		return
	}
	// "/" is a catch-all pattern in ServeMux.
	if r.URL.Path != config.RouteRoot {
		http.NotFound(w, r)
		return
	}

	item := s.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}
	serve(w, r, item)
}

// handleMonth renders /month/YYYY-MM on demand. Months outside the lunar
// table answer 422 so clients can tell them from server faults.
func (s *FeedServer) handleMonth(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r) {
		return
	}
	if s.Month == nil {
		http.NotFound(w, r)
		return
	}

	t, err := time.Parse(config.DateFormatMonth, r.PathValue(config.PathValueMonth))
	if err != nil {
		http.Error(w, config.ErrInvalidMonthPath, http.StatusBadRequest)
		return
	}
	month := civil.FromTime(t)

	data, err := s.Month(r.Context(), month)
	switch {
	case errors.Is(err, lunar.ErrOutOfRange):
		http.Error(w, config.HTTPMsgOutOfRange, http.StatusUnprocessableEntity)
		return
	case err != nil:
		slog.Error(config.ErrRenderMonth,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyMonth, month.Time().Format(config.DateFormatMonth),
			config.LogKeyError, err,
		)
		http.Error(w, config.HTTPMsgInternalErr, http.StatusInternalServerError)
		return
	}

	// Past and future months are computed on demand and stamped now.
	serve(w, r, newCacheItem(data, time.Now()))
}

// allowMethod admits GET and HEAD; anything else gets 405 with an Allow header.
func allowMethod(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set(config.HeaderAllow, config.AllowedMethods)
	http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
	return false
}

// serve writes item with conditional request support.
func serve(w http.ResponseWriter, r *http.Request, item *cacheItem) {
	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}
