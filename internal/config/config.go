package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client used to download contacts.
var UserAgent = "Go-Almanac/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Almanac"
	AppID             = "com.github.tartampluch.go-almanac"
	BinaryName        = "go-almanac"
	KeyringService    = "com.github.tartampluch.go-almanac"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	SettingsFileName  = "settings.yaml"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Commands & Flags
// -----------------------------------------------------------------------------

const (
	CmdMonth   = "month [YYYY-MM-DD]"
	CmdICS     = "ics [YYYY-MM-DD]"
	CmdServe   = "serve"
	CmdVersion = "version"

	FlagConfig     = "config"
	FlagDebug      = "debug"
	FlagWeekStart  = "week-start"
	FlagLanguage   = "lang"
	FlagResolvers  = "resolvers"
	FlagPort       = "port"
	FlagNoLeading  = "no-leading"
	FlagNoTrailing = "no-trailing"

	FlagDescConfig     = "Path to the YAML settings file"
	FlagDescDebug      = "Enable debug logging to stdout"
	FlagDescWeekStart  = "ISO weekday (1=Monday..7=Sunday) of the first column"
	FlagDescLanguage   = "Language of the weekday titles (zh, en)"
	FlagDescResolvers  = "Ordered annotation resolvers, first match wins"
	FlagDescPort       = "Port of the ICS feed server"
	FlagDescNoLeading  = "Do not add a full row of the previous month"
	FlagDescNoTrailing = "Do not add a full row of the next month"

	ShortRoot    = "Month calendar annotated with Chinese holidays and solar terms"
	ShortMonth   = "Print the month grid of a date (default: today)"
	ShortICS     = "Write the annotations of a month as iCalendar to stdout"
	ShortServe   = "Publish the annotations of the current month as an ICS feed"
	ShortVersion = "Show application version and exit"

	MsgVersionOutput = "%s version %s (commit %s, built %s) %s/%s\n"
)

// -----------------------------------------------------------------------------
// Calendar Defaults
// -----------------------------------------------------------------------------

const (
	DefaultWeekStart      = 1
	DefaultLanguage       = "zh"
	DefaultPort           = "18080"
	DefaultRefreshMin     = 60
	DaysPerWeek           = 7
	DefaultFillLeading    = true
	DefaultFillTrailing   = true
	DefaultHighlightToday = true

	// DateFormatISO is the layout of cell ids and CLI date arguments.
	DateFormatISO = "2006-01-02"
	// DateFormatMonth is the layout of the month path segment of the server.
	DateFormatMonth = "2006-01"
)

// Resolver names accepted in settings and on the command line.
const (
	ResolverLunarHoliday   = "lunar-holiday"
	ResolverCivilHoliday   = "civil-holiday"
	ResolverTermOrLunarDay = "term-or-lunar-day"
	ResolverWinterNine     = "winter-nine"
	ResolverDogDays        = "dog-days"
	ResolverBirthday       = "birthday"
)

// DefaultResolvers is the ordering used when the settings do not name one.
var DefaultResolvers = []string{
	ResolverLunarHoliday,
	ResolverCivilHoliday,
	ResolverTermOrLunarDay,
}

// SupportedLanguages defines the list of available title languages.
var SupportedLanguages = []string{"zh", "en"}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

// TKeyWeekdays holds the message ids of the weekday titles, Monday first.
var TKeyWeekdays = [DaysPerWeek]string{
	"weekday_mon",
	"weekday_tue",
	"weekday_wed",
	"weekday_thu",
	"weekday_fri",
	"weekday_sat",
	"weekday_sun",
}

// CanonicalWeekdayTitles are the fixed titles, Monday first.
var CanonicalWeekdayTitles = [DaysPerWeek]string{"一", "二", "三", "四", "五", "六", "日"}

// -----------------------------------------------------------------------------
// Contacts Source
// -----------------------------------------------------------------------------

const (
	SourceModeWeb   = "web"
	SourceModeLocal = "local"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	// Date layouts used for parsing vCard BDAY fields
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"
	DefaultLeapYear     = 2000 // Leap year fallback for dates like --02-29

	// AcceptVCard is sent as the Accept header of contact downloads.
	AcceptVCard = "text/vcard, text/x-vcard;q=0.9, text/directory;q=0.8, */*;q=0.1"

	FallbackName    = "Unknown"
	FormatBirthday  = "%s生日"
	LabelMaxNameLen = 8
)

// VCardMediaTypes are the Content-Type values accepted for a vCard download.
var VCardMediaTypes = []string{
	"text/vcard",
	"text/x-vcard",
	"text/directory",
	"text/plain",
	"application/octet-stream",
}

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Almanac//Feed//ZH"
	ICalCalName = "Almanac"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "go-almanac"
	ICalTransp  = "TRANSPARENT"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropTransp     = "TRANSP"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	FormatUID = "%s@%s"

	DefaultICalRefresh = 1 * time.Hour

	// StubVCalendar is the minimal valid iCalendar object used when a month has no annotation.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	RouteMonth          = "/month/{month}"
	PathValueMonth      = "month"
	AddrSeparator       = ":"
	MinPort             = 1
	MaxPort             = 65535
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderAccept          = "Accept"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrWeekStartRange   = "week start must be between 1 and 7"
	ErrTitlesCount      = "weekday titles must contain exactly 7 entries"
	ErrTitlesDuplicate  = "weekday titles must be distinct"
	ErrNilResolver      = "resolver chain contains a nil resolver"
	ErrUnknownResolver  = "unknown resolver"
	ErrLunarMissing     = "lunar converter is not configured"
	ErrColumnNotFound   = "weekday not found in ordered titles"
	ErrOutOfRange       = "date outside the supported lunar range"
	ErrAnnotate         = "failed to annotate date"
	ErrBuildGrid        = "failed to build calendar grid"
	ErrDateParse        = "unable to parse date"
	ErrSettingsRead     = "failed to read settings"
	ErrSettingsParse    = "failed to parse settings"
	ErrLanguage         = "unsupported language"
	ErrLocalPathEmpty   = "configuration error: local path is empty"
	ErrWebURLEmpty      = "configuration error: web URL is empty"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrModeUnsupport    = "configuration error: unsupported source mode"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrContentType      = "unexpected content type for vCard data"
	ErrFetchRequest     = "failed to create request"
	ErrFetchNetwork     = "network error during fetch"
	ErrFetchStatus      = "server returned unexpected status"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrPortNumber       = "server port must be a number"
	ErrPortRange        = "server port must be between 1 and 65535"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrRenderMonth      = "failed to render month"
	ErrKeyringLookup    = "failed to read password from keyring"
	ErrInvalidMonthPath = "invalid month, expected YYYY-MM"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInternalErr  = "Internal Server Error"
	HTTPMsgOutOfRange   = "Month outside the supported lunar range"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgGridBuilt      = "Calendar grid built"
	MsgGateRebuild    = "Rebuilding calendar grid"
	MsgGateHighlight  = "Updating highlighted day only"
	MsgMonthChanged   = "Displayed month changed"
	MsgFeedGenerated  = "Calendar feed generated"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Calendar cache updated"
	MsgWorkerStart    = "Background worker started"
	MsgWorkerStop     = "Worker stopping due to context cancellation"
	MsgRefreshFailed  = "Feed refresh failed"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgContactsLoad   = "Contacts loaded"
	MsgFetchStart     = "Initiating vCard download"
	MsgFetchStatus    = "Server returned error status"
	MsgFetchMediaType = "Server returned a non-vCard payload"
	MsgFetchOK        = "vCards downloading"
	MsgBirthdayIndex  = "Birthdays indexed"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgSettingsLoad   = "Settings loaded"
	MsgSettingsNone   = "Settings file not found, using defaults"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent   = "component"
	LogKeyError       = "error"
	LogKeyURL         = "url"
	LogKeyStatus      = "status_code"
	LogKeyFile        = "file"
	LogKeyLang        = "lang"
	LogKeyKey         = "key"
	LogKeyPort        = "port"
	LogKeyMode        = "mode"
	LogKeyValue       = "value"
	LogKeyDate        = "date"
	LogKeyMonth       = "month"
	LogKeyWeekStart   = "week_start"
	LogKeyCells       = "cells"
	LogKeyLeading     = "leading"
	LogKeyTrailing    = "trailing"
	LogKeyEvents      = "events"
	LogKeyCount       = "count"
	LogKeyDays        = "days"
	LogKeySizeBytes   = "size_bytes"
	LogKeyContentType = "content_type"
	LogKeyETag        = "etag"
	LogKeyResolvers   = "resolvers"
	LogKeyDuration    = "duration_ms"
	LogKeyInterval    = "interval"
	LogKeyTransition  = "transition"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompGrid     = "grid"
	CompGate     = "gate"
	CompLunar    = "lunar"
	CompFeed     = "feed"
	CompServer   = "server"
	CompContacts = "contacts"
	CompFetcher  = "fetcher"
	CompWorker   = "worker"
	CompMain     = "main"
	CompI18n     = "i18n"
	CompSettings = "settings"
)
