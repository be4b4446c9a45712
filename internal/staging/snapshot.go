package staging

import (
	"context"

	"github.com/yndnr/prefmirror/internal/core/domain"
	"github.com/yndnr/prefmirror/internal/setting"
)

// Snapshot is an in-memory copy of every persisted setting.
//
// A Snapshot is owned by its caller and is not safe for concurrent use.
// Edits stay local until the snapshot is passed to Mirror.Save.
type Snapshot struct {
	// Identity
	PublicKey      *domain.PublicKey `setting:"public_key" yaml:"public_key" json:"public_key"`
	LogN           uint8             `setting:"log_n" yaml:"log_n" json:"log_n"`
	LoginAtStartup bool              `setting:"login_at_startup" yaml:"login_at_startup" json:"login_at_startup"`

	// Network
	Offline                         bool `setting:"offline" yaml:"offline" json:"offline"`
	LoadAvatars                     bool `setting:"load_avatars" yaml:"load_avatars" json:"load_avatars"`
	LoadMedia                       bool `setting:"load_media" yaml:"load_media" json:"load_media"`
	CheckNip05                      bool `setting:"check_nip05" yaml:"check_nip05" json:"check_nip05"`
	AutomaticallyFetchMetadata      bool `setting:"automatically_fetch_metadata" yaml:"automatically_fetch_metadata" json:"automatically_fetch_metadata"`
	RelayConnectionRequiresApproval bool `setting:"relay_connection_requires_approval" yaml:"relay_connection_requires_approval" json:"relay_connection_requires_approval"`
	RelayAuthRequiresApproval       bool `setting:"relay_auth_requires_approval" yaml:"relay_auth_requires_approval" json:"relay_auth_requires_approval"`

	// Relay selection
	NumRelaysPerPerson uint8 `setting:"num_relays_per_person" yaml:"num_relays_per_person" json:"num_relays_per_person"`
	MaxRelays          uint8 `setting:"max_relays" yaml:"max_relays" json:"max_relays"`

	// Feed
	LoadMoreCount uint64 `setting:"load_more_count" yaml:"load_more_count" json:"load_more_count"`

	// Event selection
	Reposts             bool   `setting:"reposts" yaml:"reposts" json:"reposts"`
	ShowLongForm        bool   `setting:"show_long_form" yaml:"show_long_form" json:"show_long_form"`
	ShowMentions        bool   `setting:"show_mentions" yaml:"show_mentions" json:"show_mentions"`
	DirectMessages      bool   `setting:"direct_messages" yaml:"direct_messages" json:"direct_messages"`
	FutureAllowanceSecs uint64 `setting:"future_allowance_secs" yaml:"future_allowance_secs" json:"future_allowance_secs"`
	HideMutesEntirely   bool   `setting:"hide_mutes_entirely" yaml:"hide_mutes_entirely" json:"hide_mutes_entirely"`
	Reactions           bool   `setting:"reactions" yaml:"reactions" json:"reactions"`
	EnableZapReceipts   bool   `setting:"enable_zap_receipts" yaml:"enable_zap_receipts" json:"enable_zap_receipts"`

	// Content filtering
	ShowMedia                       bool `setting:"show_media" yaml:"show_media" json:"show_media"`
	ApproveContentWarning           bool `setting:"approve_content_warning" yaml:"approve_content_warning" json:"approve_content_warning"`
	ShowDeletedEvents               bool `setting:"show_deleted_events" yaml:"show_deleted_events" json:"show_deleted_events"`
	AvoidSpamOnUnsafeRelays         bool `setting:"avoid_spam_on_unsafe_relays" yaml:"avoid_spam_on_unsafe_relays" json:"avoid_spam_on_unsafe_relays"`
	ApplySpamFilterOnIncomingEvents bool `setting:"apply_spam_filter_on_incoming_events" yaml:"apply_spam_filter_on_incoming_events" json:"apply_spam_filter_on_incoming_events"`
	ApplySpamFilterOnThreads        bool `setting:"apply_spam_filter_on_threads" yaml:"apply_spam_filter_on_threads" json:"apply_spam_filter_on_threads"`
	ApplySpamFilterOnInbox          bool `setting:"apply_spam_filter_on_inbox" yaml:"apply_spam_filter_on_inbox" json:"apply_spam_filter_on_inbox"`
	ApplySpamFilterOnGlobal         bool `setting:"apply_spam_filter_on_global" yaml:"apply_spam_filter_on_global" json:"apply_spam_filter_on_global"`

	// Posting
	Pow          uint8  `setting:"pow" yaml:"pow" json:"pow"`
	SetClientTag bool   `setting:"set_client_tag" yaml:"set_client_tag" json:"set_client_tag"`
	SetUserAgent bool   `setting:"set_user_agent" yaml:"set_user_agent" json:"set_user_agent"`
	DelegateeTag string `setting:"delegatee_tag" yaml:"delegatee_tag" json:"delegatee_tag"`

	// User interface
	MaxFPS                      uint32  `setting:"max_fps" yaml:"max_fps" json:"max_fps"`
	RecomputeFeedPeriodically   bool    `setting:"recompute_feed_periodically" yaml:"recompute_feed_periodically" json:"recompute_feed_periodically"`
	FeedRecomputeIntervalMs     uint32  `setting:"feed_recompute_interval_ms" yaml:"feed_recompute_interval_ms" json:"feed_recompute_interval_ms"`
	FeedThreadScrollToMainEvent bool    `setting:"feed_thread_scroll_to_main_event" yaml:"feed_thread_scroll_to_main_event" json:"feed_thread_scroll_to_main_event"`
	ThemeVariant                string  `setting:"theme_variant" yaml:"theme_variant" json:"theme_variant"`
	DarkMode                    bool    `setting:"dark_mode" yaml:"dark_mode" json:"dark_mode"`
	FollowOSDarkMode            bool    `setting:"follow_os_dark_mode" yaml:"follow_os_dark_mode" json:"follow_os_dark_mode"`
	OverrideDPI                 *uint32 `setting:"override_dpi" yaml:"override_dpi" json:"override_dpi"`
	HighlightUnreadEvents       bool    `setting:"highlight_unread_events" yaml:"highlight_unread_events" json:"highlight_unread_events"`
	FeedNewestAtBottom          bool    `setting:"feed_newest_at_bottom" yaml:"feed_newest_at_bottom" json:"feed_newest_at_bottom"`
	PostingAreaAtTop            bool    `setting:"posting_area_at_top" yaml:"posting_area_at_top" json:"posting_area_at_top"`
	StatusBar                   bool    `setting:"status_bar" yaml:"status_bar" json:"status_bar"`
	ImageResizeAlgorithm        string  `setting:"image_resize_algorithm" yaml:"image_resize_algorithm" json:"image_resize_algorithm"`
	InertialScrolling           bool    `setting:"inertial_scrolling" yaml:"inertial_scrolling" json:"inertial_scrolling"`
	MouseAcceleration           float32 `setting:"mouse_acceleration" yaml:"mouse_acceleration" json:"mouse_acceleration"`
	WgpuRenderer                bool    `setting:"wgpu_renderer" yaml:"wgpu_renderer" json:"wgpu_renderer"`

	// Staleness
	RelayListBecomesStaleMinutes      uint64 `setting:"relay_list_becomes_stale_minutes" yaml:"relay_list_becomes_stale_minutes" json:"relay_list_becomes_stale_minutes"`
	MetadataBecomesStaleMinutes       uint64 `setting:"metadata_becomes_stale_minutes" yaml:"metadata_becomes_stale_minutes" json:"metadata_becomes_stale_minutes"`
	Nip05BecomesStaleIfValidHours     uint64 `setting:"nip05_becomes_stale_if_valid_hours" yaml:"nip05_becomes_stale_if_valid_hours" json:"nip05_becomes_stale_if_valid_hours"`
	Nip05BecomesStaleIfInvalidMinutes uint64 `setting:"nip05_becomes_stale_if_invalid_minutes" yaml:"nip05_becomes_stale_if_invalid_minutes" json:"nip05_becomes_stale_if_invalid_minutes"`
	AvatarBecomesStaleHours           uint64 `setting:"avatar_becomes_stale_hours" yaml:"avatar_becomes_stale_hours" json:"avatar_becomes_stale_hours"`
	MediaBecomesStaleHours            uint64 `setting:"media_becomes_stale_hours" yaml:"media_becomes_stale_hours" json:"media_becomes_stale_hours"`

	// Websocket
	MaxWebsocketMessageSizeKB     uint   `setting:"max_websocket_message_size_kb" yaml:"max_websocket_message_size_kb" json:"max_websocket_message_size_kb"`
	MaxWebsocketFrameSizeKB       uint   `setting:"max_websocket_frame_size_kb" yaml:"max_websocket_frame_size_kb" json:"max_websocket_frame_size_kb"`
	WebsocketAcceptUnmaskedFrames bool   `setting:"websocket_accept_unmasked_frames" yaml:"websocket_accept_unmasked_frames" json:"websocket_accept_unmasked_frames"`
	WebsocketConnectTimeoutSec    uint64 `setting:"websocket_connect_timeout_sec" yaml:"websocket_connect_timeout_sec" json:"websocket_connect_timeout_sec"`
	WebsocketPingFrequencySec     uint64 `setting:"websocket_ping_frequency_sec" yaml:"websocket_ping_frequency_sec" json:"websocket_ping_frequency_sec"`

	// HTTP fetcher
	FetcherConnectTimeoutSec            uint64 `setting:"fetcher_connect_timeout_sec" yaml:"fetcher_connect_timeout_sec" json:"fetcher_connect_timeout_sec"`
	FetcherTimeoutSec                   uint64 `setting:"fetcher_timeout_sec" yaml:"fetcher_timeout_sec" json:"fetcher_timeout_sec"`
	FetcherMaxRequestsPerHost           uint   `setting:"fetcher_max_requests_per_host" yaml:"fetcher_max_requests_per_host" json:"fetcher_max_requests_per_host"`
	FetcherHostExclusionOnLowErrorSecs  uint64 `setting:"fetcher_host_exclusion_on_low_error_secs" yaml:"fetcher_host_exclusion_on_low_error_secs" json:"fetcher_host_exclusion_on_low_error_secs"`
	FetcherHostExclusionOnMedErrorSecs  uint64 `setting:"fetcher_host_exclusion_on_med_error_secs" yaml:"fetcher_host_exclusion_on_med_error_secs" json:"fetcher_host_exclusion_on_med_error_secs"`
	FetcherHostExclusionOnHighErrorSecs uint64 `setting:"fetcher_host_exclusion_on_high_error_secs" yaml:"fetcher_host_exclusion_on_high_error_secs" json:"fetcher_host_exclusion_on_high_error_secs"`

	// Database
	PrunePeriodDays      uint64 `setting:"prune_period_days" yaml:"prune_period_days" json:"prune_period_days"`
	CachePrunePeriodDays uint64 `setting:"cache_prune_period_days" yaml:"cache_prune_period_days" json:"cache_prune_period_days"`

	// Blossom media servers
	BlossomServers string `setting:"blossom_servers" yaml:"blossom_servers" json:"blossom_servers"`
}

// WithDefaults returns a snapshot where every field holds its key default.
func WithDefaults() *Snapshot {
	s := new(Snapshot)
	for _, b := range table {
		b.applyDefault(s)
	}
	return s
}

// Load reads every field from r. Absent or undecodable values read as
// their defaults, so Load never fails.
func Load(ctx context.Context, r setting.Reader) *Snapshot {
	s := new(Snapshot)
	for _, b := range table {
		b.load(ctx, r, s)
	}
	return s
}

// table binds each catalog key to its Snapshot field. Save writes fields
// in this order.
var table = []binding{
	bindOptional(setting.PublicKey, func(s *Snapshot) **domain.PublicKey { return &s.PublicKey }),
	bind(setting.LogN, func(s *Snapshot) *uint8 { return &s.LogN }),
	bind(setting.LoginAtStartup, func(s *Snapshot) *bool { return &s.LoginAtStartup }),
	bind(setting.Offline, func(s *Snapshot) *bool { return &s.Offline }),
	bind(setting.LoadAvatars, func(s *Snapshot) *bool { return &s.LoadAvatars }),
	bind(setting.LoadMedia, func(s *Snapshot) *bool { return &s.LoadMedia }),
	bind(setting.CheckNip05, func(s *Snapshot) *bool { return &s.CheckNip05 }),
	bind(setting.AutomaticallyFetchMetadata, func(s *Snapshot) *bool { return &s.AutomaticallyFetchMetadata }),
	bind(setting.RelayConnectionRequiresApproval, func(s *Snapshot) *bool { return &s.RelayConnectionRequiresApproval }),
	bind(setting.RelayAuthRequiresApproval, func(s *Snapshot) *bool { return &s.RelayAuthRequiresApproval }),
	bind(setting.NumRelaysPerPerson, func(s *Snapshot) *uint8 { return &s.NumRelaysPerPerson }),
	bind(setting.MaxRelays, func(s *Snapshot) *uint8 { return &s.MaxRelays }),
	bind(setting.LoadMoreCount, func(s *Snapshot) *uint64 { return &s.LoadMoreCount }),
	bind(setting.Reposts, func(s *Snapshot) *bool { return &s.Reposts }),
	bind(setting.ShowLongForm, func(s *Snapshot) *bool { return &s.ShowLongForm }),
	bind(setting.ShowMentions, func(s *Snapshot) *bool { return &s.ShowMentions }),
	bind(setting.DirectMessages, func(s *Snapshot) *bool { return &s.DirectMessages }),
	bind(setting.FutureAllowanceSecs, func(s *Snapshot) *uint64 { return &s.FutureAllowanceSecs }),
	bind(setting.HideMutesEntirely, func(s *Snapshot) *bool { return &s.HideMutesEntirely }),
	bind(setting.Reactions, func(s *Snapshot) *bool { return &s.Reactions }),
	bind(setting.EnableZapReceipts, func(s *Snapshot) *bool { return &s.EnableZapReceipts }),
	bind(setting.ShowMedia, func(s *Snapshot) *bool { return &s.ShowMedia }),
	bind(setting.ApproveContentWarning, func(s *Snapshot) *bool { return &s.ApproveContentWarning }),
	bind(setting.ShowDeletedEvents, func(s *Snapshot) *bool { return &s.ShowDeletedEvents }),
	bind(setting.AvoidSpamOnUnsafeRelays, func(s *Snapshot) *bool { return &s.AvoidSpamOnUnsafeRelays }),
	bind(setting.ApplySpamFilterOnIncomingEvents, func(s *Snapshot) *bool { return &s.ApplySpamFilterOnIncomingEvents }),
	bind(setting.ApplySpamFilterOnThreads, func(s *Snapshot) *bool { return &s.ApplySpamFilterOnThreads }),
	bind(setting.ApplySpamFilterOnInbox, func(s *Snapshot) *bool { return &s.ApplySpamFilterOnInbox }),
	bind(setting.ApplySpamFilterOnGlobal, func(s *Snapshot) *bool { return &s.ApplySpamFilterOnGlobal }),
	bind(setting.Pow, func(s *Snapshot) *uint8 { return &s.Pow }),
	bind(setting.SetClientTag, func(s *Snapshot) *bool { return &s.SetClientTag }),
	bind(setting.SetUserAgent, func(s *Snapshot) *bool { return &s.SetUserAgent }),
	bind(setting.DelegateeTag, func(s *Snapshot) *string { return &s.DelegateeTag }),
	bind(setting.MaxFPS, func(s *Snapshot) *uint32 { return &s.MaxFPS }),
	bind(setting.RecomputeFeedPeriodically, func(s *Snapshot) *bool { return &s.RecomputeFeedPeriodically }),
	bind(setting.FeedRecomputeIntervalMs, func(s *Snapshot) *uint32 { return &s.FeedRecomputeIntervalMs }),
	bind(setting.FeedThreadScrollToMainEvent, func(s *Snapshot) *bool { return &s.FeedThreadScrollToMainEvent }),
	bind(setting.ThemeVariant, func(s *Snapshot) *string { return &s.ThemeVariant }),
	bind(setting.DarkMode, func(s *Snapshot) *bool { return &s.DarkMode }),
	bind(setting.FollowOSDarkMode, func(s *Snapshot) *bool { return &s.FollowOSDarkMode }),
	bindOptional(setting.OverrideDPI, func(s *Snapshot) **uint32 { return &s.OverrideDPI }),
	bind(setting.HighlightUnreadEvents, func(s *Snapshot) *bool { return &s.HighlightUnreadEvents }),
	bind(setting.FeedNewestAtBottom, func(s *Snapshot) *bool { return &s.FeedNewestAtBottom }),
	bind(setting.PostingAreaAtTop, func(s *Snapshot) *bool { return &s.PostingAreaAtTop }),
	bind(setting.StatusBar, func(s *Snapshot) *bool { return &s.StatusBar }),
	bind(setting.ImageResizeAlgorithm, func(s *Snapshot) *string { return &s.ImageResizeAlgorithm }),
	bind(setting.InertialScrolling, func(s *Snapshot) *bool { return &s.InertialScrolling }),
	bind(setting.MouseAcceleration, func(s *Snapshot) *float32 { return &s.MouseAcceleration }),
	bind(setting.WgpuRenderer, func(s *Snapshot) *bool { return &s.WgpuRenderer }),
	bind(setting.RelayListBecomesStaleMinutes, func(s *Snapshot) *uint64 { return &s.RelayListBecomesStaleMinutes }),
	bind(setting.MetadataBecomesStaleMinutes, func(s *Snapshot) *uint64 { return &s.MetadataBecomesStaleMinutes }),
	bind(setting.Nip05BecomesStaleIfValidHours, func(s *Snapshot) *uint64 { return &s.Nip05BecomesStaleIfValidHours }),
	bind(setting.Nip05BecomesStaleIfInvalidMinutes, func(s *Snapshot) *uint64 { return &s.Nip05BecomesStaleIfInvalidMinutes }),
	bind(setting.AvatarBecomesStaleHours, func(s *Snapshot) *uint64 { return &s.AvatarBecomesStaleHours }),
	bind(setting.MediaBecomesStaleHours, func(s *Snapshot) *uint64 { return &s.MediaBecomesStaleHours }),
	bind(setting.MaxWebsocketMessageSizeKB, func(s *Snapshot) *uint { return &s.MaxWebsocketMessageSizeKB }),
	bind(setting.MaxWebsocketFrameSizeKB, func(s *Snapshot) *uint { return &s.MaxWebsocketFrameSizeKB }),
	bind(setting.WebsocketAcceptUnmaskedFrames, func(s *Snapshot) *bool { return &s.WebsocketAcceptUnmaskedFrames }),
	bind(setting.WebsocketConnectTimeoutSec, func(s *Snapshot) *uint64 { return &s.WebsocketConnectTimeoutSec }),
	bind(setting.WebsocketPingFrequencySec, func(s *Snapshot) *uint64 { return &s.WebsocketPingFrequencySec }),
	bind(setting.FetcherConnectTimeoutSec, func(s *Snapshot) *uint64 { return &s.FetcherConnectTimeoutSec }),
	bind(setting.FetcherTimeoutSec, func(s *Snapshot) *uint64 { return &s.FetcherTimeoutSec }),
	bind(setting.FetcherMaxRequestsPerHost, func(s *Snapshot) *uint { return &s.FetcherMaxRequestsPerHost }),
	bind(setting.FetcherHostExclusionOnLowErrorSecs, func(s *Snapshot) *uint64 { return &s.FetcherHostExclusionOnLowErrorSecs }),
	bind(setting.FetcherHostExclusionOnMedErrorSecs, func(s *Snapshot) *uint64 { return &s.FetcherHostExclusionOnMedErrorSecs }),
	bind(setting.FetcherHostExclusionOnHighErrorSecs, func(s *Snapshot) *uint64 { return &s.FetcherHostExclusionOnHighErrorSecs }),
	bind(setting.PrunePeriodDays, func(s *Snapshot) *uint64 { return &s.PrunePeriodDays }),
	bind(setting.CachePrunePeriodDays, func(s *Snapshot) *uint64 { return &s.CachePrunePeriodDays }),
	bind(setting.BlossomServers, func(s *Snapshot) *string { return &s.BlossomServers }),
}
