package usecase

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"radio-box-ng/business/entity"
	"radio-box-ng/pkg/logger"
)

var (
	ErrVolumeOutOfRange = errors.New("volume level out of range")
	ErrNoStation        = errors.New("no station to play")
)

const defaultReconnectDelay = 3 * time.Second

type RadioConfig struct {
	ReconnectDelay time.Duration
}

// RadioUseCase is the playback state machine. It exclusively owns the
// playback and sleep-timer state; the HTTP layer, the button classifier
// and the stream callbacks all mutate state through its methods only,
// serialized by the lock.
type RadioUseCase struct {
	cfg      *RadioConfig
	player   Player
	broker   Broker
	store    Store
	catalog  *Catalog
	metrics  Metrics
	settings *entity.Settings
	log      *logger.Zerolog

	mu           sync.Mutex
	state        entity.PlaybackState
	sleep        SleepTimer
	reconnectGen uint64
}

func NewRadioUseCase(cfg *RadioConfig, player Player, broker Broker, store Store,
	catalog *Catalog, metrics Metrics, settings *entity.Settings, log *logger.Zerolog) *RadioUseCase {

	if cfg == nil {
		cfg = &RadioConfig{}
	}
	if cfg.ReconnectDelay == 0 {
		cfg.ReconnectDelay = defaultReconnectDelay
	}
	if metrics == nil {
		metrics = NoopMetrics{}
	}

	uc := &RadioUseCase{
		cfg:      cfg,
		player:   player,
		broker:   broker,
		store:    store,
		catalog:  catalog,
		metrics:  metrics,
		settings: settings,
		log:      log,
		state: entity.PlaybackState{
			Index:  -1,
			Volume: settings.Volume,
		},
	}

	uc.player.SetMetadataCallback(uc.metadataCallback)
	uc.player.SetStreamEndedCallback(uc.streamEndedCallback)

	return uc
}

func (uc *RadioUseCase) Start(url string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.start(url)
}

// start runs the full stop+connect cycle, even when the requested URL is
// already playing, and supersedes any pending reconnect. Caller holds
// the lock.
func (uc *RadioUseCase) start(url string) error {
	uc.reconnectGen++
	uc.player.Stop()
	uc.clearMetadata()

	if err := uc.player.Play(url); err != nil {
		uc.state.Playing = false
		uc.state.URL = ""
		uc.sleep.Disarm()
		uc.metrics.StreamFailed()
		uc.metrics.SetPlaying(false)
		uc.publish()
		uc.log.Error().Msgf("failed to start stream %s: %v", url, err)
		return err
	}

	uc.state.Playing = true
	uc.state.URL = url
	if i := uc.catalog.FindIndexByURL(url); i >= 0 {
		uc.state.Index = i
	}
	uc.settings.DefaultStation = url

	uc.persistResume()
	uc.metrics.StreamStarted()
	uc.metrics.SetPlaying(true)
	uc.publish()

	uc.log.Debug().Msgf("streaming %s (index %d)", url, uc.state.Index)
	return nil
}

// Stop is idempotent and force-disarms the sleep timer on every path.
func (uc *RadioUseCase) Stop() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.stop()
}

func (uc *RadioUseCase) stop() {
	uc.reconnectGen++
	uc.player.Stop()
	uc.state.Playing = false
	uc.state.URL = ""
	uc.clearMetadata()
	uc.sleep.Disarm()
	uc.metrics.SetPlaying(false)
	uc.publish()
}

func (uc *RadioUseCase) ToggleStartStop() {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.state.Playing {
		uc.stop()
		return
	}
	if err := uc.startLast(); err != nil {
		uc.log.Debug().Msgf("toggle: %v", err)
	}
}

// StartLast resumes the configured default station, falling back to the
// catalog entry at the current index.
func (uc *RadioUseCase) StartLast() error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.startLast()
}

func (uc *RadioUseCase) startLast() error {
	url := uc.settings.DefaultStation
	if url == "" {
		if st, err := uc.catalog.Get(uc.state.Index); err == nil {
			url = st.URL
		}
	}
	if url == "" {
		return ErrNoStation
	}
	return uc.start(url)
}

func (uc *RadioUseCase) Next() {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	i, err := uc.catalog.Next(uc.state.Index)
	if err != nil {
		return
	}
	st, err := uc.catalog.Get(i)
	if err != nil {
		return
	}

	uc.state.Index = i
	if err := uc.start(st.URL); err != nil {
		uc.log.Error().Msgf("failed to switch to station %d: %v", i, err)
	}
}

func (uc *RadioUseCase) SetVolume(level int) error {
	if level < entity.VolumeMin || level > entity.VolumeMax {
		return ErrVolumeOutOfRange
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.state.Volume = level
	uc.settings.Volume = level
	uc.player.SetVolume(level)
	uc.persistResume()
	uc.publish()
	return nil
}

// ArmSleepTimer arms the timer for the given minutes; zero or negative
// disarms it.
func (uc *RadioUseCase) ArmSleepTimer(minutes int) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.sleep.Arm(minutes, nowMs())
	uc.publish()
}

// ServiceTick is called once per device-loop tick.
func (uc *RadioUseCase) ServiceTick(now int64) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.sleep.CheckExpiry(now, uc.state.Playing) {
		uc.log.Info().Msg("sleep timer expired, stopping playback")
		uc.stop()
	}
}

func (uc *RadioUseCase) HandleButton(ev entity.ButtonEvent) {
	switch ev {
	case entity.ButtonShortPress:
		uc.metrics.ButtonPressed("short")
		uc.ToggleStartStop()
	case entity.ButtonLongPress:
		uc.metrics.ButtonPressed("long")
		uc.Next()
	}
}

// ResumeFromPersisted applies the fast-persist record. Out-of-range
// values are ignored silently, keeping the defaults already in effect.
func (uc *RadioUseCase) ResumeFromPersisted() {
	rec, err := uc.store.LoadResume()
	if err != nil || rec == nil {
		return
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if rec.StationIndex >= 0 && rec.StationIndex < uc.catalog.Len() {
		uc.state.Index = rec.StationIndex
	}
	if rec.Volume >= entity.VolumeMin && rec.Volume <= entity.VolumeMax {
		uc.state.Volume = rec.Volume
		uc.settings.Volume = rec.Volume
	}
	uc.player.SetVolume(uc.state.Volume)
}

// UpdateNetworkConfig persists new WiFi credentials; the caller is
// expected to restart the device afterwards.
func (uc *RadioUseCase) UpdateNetworkConfig(ssid, password string, autoPlay *bool) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.settings.SSID = ssid
	uc.settings.Password = password
	if autoPlay != nil {
		uc.settings.AutoPlay = *autoPlay
	}
	return uc.store.SaveSettings(uc.settings)
}

func (uc *RadioUseCase) Settings() entity.Settings {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return *uc.settings
}

func (uc *RadioUseCase) Status() entity.Status {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.status()
}

func (uc *RadioUseCase) status() entity.Status {
	station := uc.state.StationName
	if station == "" {
		if st, err := uc.catalog.Get(uc.state.Index); err == nil {
			station = st.Name
		}
	}

	return entity.Status{
		Playing:        uc.state.Playing,
		Station:        station,
		Title:          uc.state.Title,
		Bitrate:        uc.state.Bitrate,
		Genre:          uc.state.Genre,
		Volume:         uc.state.Volume,
		SleepTimer:     uc.sleep.State().Active,
		SleepRemaining: uc.sleep.RemainingMs(nowMs()),
	}
}

func (uc *RadioUseCase) metadataCallback(ev entity.MetadataEvent) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	switch ev.Kind {
	case entity.MetaTitle:
		uc.state.Title = ev.Value
	case entity.MetaStationName:
		uc.state.StationName = ev.Value
	case entity.MetaBitrate:
		uc.state.Bitrate = ev.Value
	case entity.MetaGenre:
		uc.state.Genre = ev.Value
	case entity.MetaURL, entity.MetaHost:
		// informational only
		return
	default:
		return
	}
	uc.publish()
}

// streamEndedCallback schedules exactly one delayed reconnect to the URL
// that was playing. A failed reconnect leaves the system idle until the
// next external trigger; a stop or a fresh start issued during the
// delay wins.
func (uc *RadioUseCase) streamEndedCallback() {
	uc.mu.Lock()
	url := uc.state.URL
	gen := uc.reconnectGen
	uc.mu.Unlock()

	if url == "" {
		return
	}
	uc.log.Info().Msgf("stream ended, reconnecting to %s in %s", url, uc.cfg.ReconnectDelay)

	time.AfterFunc(uc.cfg.ReconnectDelay, func() {
		uc.mu.Lock()
		defer uc.mu.Unlock()

		if gen != uc.reconnectGen || uc.state.URL != url {
			return
		}
		uc.metrics.StreamReconnected()
		if err := uc.start(url); err != nil {
			uc.log.Error().Msgf("reconnect failed: %v", err)
		}
	})
}

func (uc *RadioUseCase) clearMetadata() {
	uc.state.Title = ""
	uc.state.Bitrate = ""
	uc.state.Genre = ""
	uc.state.StationName = ""
}

func (uc *RadioUseCase) persistResume() {
	if uc.store == nil {
		return
	}
	err := uc.store.SaveResume(&entity.ResumeRecord{
		StationIndex: uc.state.Index,
		Volume:       uc.state.Volume,
	})
	if err != nil {
		uc.log.Error().Msgf("failed to persist resume record: %v", err)
	}
}

func (uc *RadioUseCase) publish() {
	if uc.broker == nil {
		return
	}
	data, err := json.Marshal(uc.status())
	if err != nil {
		uc.log.Error().Msg(err.Error())
		return
	}
	uc.broker.PublishState(data)
}

func nowMs() int64 {
	return time.Now().UnixMilli()
}
