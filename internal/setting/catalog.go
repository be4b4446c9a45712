package setting

import "github.com/yndnr/prefmirror/internal/core/domain"

// The catalog. Declaration order is catalog order.
var (
	// Identity
	PublicKey      = define[*domain.PublicKey]("public_key", Optional(PublicKeyValue), nil)
	LogN           = define("log_n", Uint8, 18)
	LoginAtStartup = define("login_at_startup", Bool, true)

	// Network
	Offline                         = define("offline", Bool, false)
	LoadAvatars                     = define("load_avatars", Bool, true)
	LoadMedia                       = define("load_media", Bool, true)
	CheckNip05                      = define("check_nip05", Bool, true)
	AutomaticallyFetchMetadata      = define("automatically_fetch_metadata", Bool, true)
	RelayConnectionRequiresApproval = define("relay_connection_requires_approval", Bool, false)
	RelayAuthRequiresApproval       = define("relay_auth_requires_approval", Bool, true)

	// Relay selection
	NumRelaysPerPerson = define("num_relays_per_person", Uint8, 2)
	MaxRelays          = define("max_relays", Uint8, 50)

	// Feed
	LoadMoreCount = define("load_more_count", Uint64, 35)

	// Event selection
	Reposts             = define("reposts", Bool, true)
	ShowLongForm        = define("show_long_form", Bool, false)
	ShowMentions        = define("show_mentions", Bool, true)
	DirectMessages      = define("direct_messages", Bool, true)
	FutureAllowanceSecs = define("future_allowance_secs", Uint64, 900)
	HideMutesEntirely   = define("hide_mutes_entirely", Bool, true)
	Reactions           = define("reactions", Bool, true)
	EnableZapReceipts   = define("enable_zap_receipts", Bool, true)

	// Content filtering
	ShowMedia                       = define("show_media", Bool, true)
	ApproveContentWarning           = define("approve_content_warning", Bool, false)
	ShowDeletedEvents               = define("show_deleted_events", Bool, false)
	AvoidSpamOnUnsafeRelays         = define("avoid_spam_on_unsafe_relays", Bool, false)
	ApplySpamFilterOnIncomingEvents = define("apply_spam_filter_on_incoming_events", Bool, true)
	ApplySpamFilterOnThreads        = define("apply_spam_filter_on_threads", Bool, false)
	ApplySpamFilterOnInbox          = define("apply_spam_filter_on_inbox", Bool, true)
	ApplySpamFilterOnGlobal         = define("apply_spam_filter_on_global", Bool, true)

	// Posting
	Pow          = define("pow", Uint8, 0)
	SetClientTag = define("set_client_tag", Bool, false)
	SetUserAgent = define("set_user_agent", Bool, false)
	DelegateeTag = define("delegatee_tag", String, "")

	// User interface
	MaxFPS                      = define("max_fps", Uint32, 12)
	RecomputeFeedPeriodically   = define("recompute_feed_periodically", Bool, true)
	FeedRecomputeIntervalMs     = define("feed_recompute_interval_ms", Uint32, 8000)
	FeedThreadScrollToMainEvent = define("feed_thread_scroll_to_main_event", Bool, true)
	ThemeVariant                = define("theme_variant", String, "Default")
	DarkMode                    = define("dark_mode", Bool, false)
	FollowOSDarkMode            = define("follow_os_dark_mode", Bool, false)
	OverrideDPI                 = define[*uint32]("override_dpi", Optional(Uint32), nil)
	HighlightUnreadEvents       = define("highlight_unread_events", Bool, true)
	FeedNewestAtBottom          = define("feed_newest_at_bottom", Bool, false)
	PostingAreaAtTop            = define("posting_area_at_top", Bool, true)
	StatusBar                   = define("status_bar", Bool, false)
	ImageResizeAlgorithm        = define("image_resize_algorithm", String, "CatmullRom")
	InertialScrolling           = define("inertial_scrolling", Bool, true)
	MouseAcceleration           = define("mouse_acceleration", Float32, 1.0)
	WgpuRenderer                = define("wgpu_renderer", Bool, false)

	// Staleness
	RelayListBecomesStaleMinutes      = define("relay_list_becomes_stale_minutes", Uint64, 20)
	MetadataBecomesStaleMinutes       = define("metadata_becomes_stale_minutes", Uint64, 20)
	Nip05BecomesStaleIfValidHours     = define("nip05_becomes_stale_if_valid_hours", Uint64, 8)
	Nip05BecomesStaleIfInvalidMinutes = define("nip05_becomes_stale_if_invalid_minutes", Uint64, 30)
	AvatarBecomesStaleHours           = define("avatar_becomes_stale_hours", Uint64, 8)
	MediaBecomesStaleHours            = define("media_becomes_stale_hours", Uint64, 8)

	// Websocket
	MaxWebsocketMessageSizeKB     = define("max_websocket_message_size_kb", Uint, 1024)
	MaxWebsocketFrameSizeKB       = define("max_websocket_frame_size_kb", Uint, 1024)
	WebsocketAcceptUnmaskedFrames = define("websocket_accept_unmasked_frames", Bool, false)
	WebsocketConnectTimeoutSec    = define("websocket_connect_timeout_sec", Uint64, 15)
	WebsocketPingFrequencySec     = define("websocket_ping_frequency_sec", Uint64, 55)

	// HTTP fetcher
	FetcherConnectTimeoutSec            = define("fetcher_connect_timeout_sec", Uint64, 15)
	FetcherTimeoutSec                   = define("fetcher_timeout_sec", Uint64, 30)
	FetcherMaxRequestsPerHost           = define("fetcher_max_requests_per_host", Uint, 3)
	FetcherHostExclusionOnLowErrorSecs  = define("fetcher_host_exclusion_on_low_error_secs", Uint64, 30)
	FetcherHostExclusionOnMedErrorSecs  = define("fetcher_host_exclusion_on_med_error_secs", Uint64, 60)
	FetcherHostExclusionOnHighErrorSecs = define("fetcher_host_exclusion_on_high_error_secs", Uint64, 600)

	// Database
	PrunePeriodDays      = define("prune_period_days", Uint64, 30)
	CachePrunePeriodDays = defineFunc("cache_prune_period_days", Uint64, func() uint64 { return PrunePeriodDays.Default() })

	// Blossom media servers
	BlossomServers = define("blossom_servers", String, "")
)

var (
	registry []Descriptor
	byName   = make(map[string]Descriptor)
)

// define registers a key with a constant default.
func define[T any](name string, codec Codec[T], def T) *Key[T] {
	return defineFunc(name, codec, func() T { return def })
}

// defineFunc registers a key whose default is computed on each call.
func defineFunc[T any](name string, codec Codec[T], def func() T) *Key[T] {
	if _, dup := byName[name]; dup {
		panic("setting: duplicate key " + name)
	}
	k := &Key[T]{name: name, codec: codec, def: def}
	registry = append(registry, k)
	byName[name] = k
	return k
}

// All returns every catalog key in catalog order.
func All() []Descriptor {
	out := make([]Descriptor, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds a key by name.
func Lookup(name string) (Descriptor, bool) {
	d, ok := byName[name]
	return d, ok
}

// Names returns every key name in catalog order.
func Names() []string {
	names := make([]string, len(registry))
	for i, d := range registry {
		names[i] = d.Name()
	}
	return names
}
