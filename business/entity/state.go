package entity

const (
	VolumeMin = 0
	VolumeMax = 21
)

type PlaybackState struct {
	Playing     bool   `json:"playing"`
	URL         string `json:"url"`
	Index       int    `json:"index"`
	Title       string `json:"title"`
	Bitrate     string `json:"bitrate"`
	Genre       string `json:"genre"`
	StationName string `json:"station_name"`
	Volume      int    `json:"volume"`
}

type SleepTimerState struct {
	Active      bool  `json:"active"`
	DurationMs  int64 `json:"duration_ms"`
	StartedAtMs int64 `json:"started_at_ms"`
}

// Status is the snapshot reported by /api/status and published
// to the MQTT state topic.
type Status struct {
	Playing        bool   `json:"playing"`
	Station        string `json:"station"`
	Title          string `json:"title"`
	Bitrate        string `json:"bitrate"`
	Genre          string `json:"genre"`
	Volume         int    `json:"volume"`
	SleepTimer     bool   `json:"sleepTimer"`
	SleepRemaining int64  `json:"sleepRemaining"`
}

type MetadataKind int

const (
	MetaTitle MetadataKind = iota
	MetaStationName
	MetaBitrate
	MetaGenre
	MetaURL
	MetaHost
)

type MetadataEvent struct {
	Kind  MetadataKind
	Value string
}

type ButtonEvent int

const (
	ButtonNone ButtonEvent = iota
	ButtonShortPress
	ButtonLongPress
)

type MetadataCallback func(ev MetadataEvent)
type StreamEndedCallback func()
