package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"radio-box-ng/business/entity"
	"radio-box-ng/pkg/logger"
)

const (
	settingsRecord = "conf/settings.json"
	stationsRecord = "conf/stations.json"
	resumeRecord   = "state/resume"

	writeAttempts   = 5
	writeRetryDelay = 50 * time.Millisecond
)

type Config struct {
	DataDir     string
	FallbackDir string
}

// Store reads and writes the persisted records through a chain of media:
// hierarchical directory, flat fallback directory, memory. The first
// available tier at open time becomes the active one; exhausting the
// write retry budget demotes to memory so the process keeps running with
// in-memory state only.
type Store struct {
	log    *logger.Zerolog
	media  []Medium
	mu     sync.Mutex
	active int
}

func NewStore(cfg *Config, log *logger.Zerolog) *Store {
	s := &Store{
		log: log,
		media: []Medium{
			NewDirMedium(cfg.DataDir),
			NewFlatMedium(cfg.FallbackDir),
			NewMemoryMedium(),
		},
		active: -1,
	}

	for i, m := range s.media {
		if m.Available() {
			s.active = i
			break
		}
		log.Warn().Msgf("storage medium %s unavailable", m.Name())
	}
	log.Info().Msgf("storage medium: %s", s.media[s.active].Name())

	return s
}

func (s *Store) medium() Medium {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.media[s.active]
}

// write retries a bounded number of times with read-back verification;
// on exhaustion it logs, demotes to the memory tier and stores there so
// subsequent loads stay consistent.
func (s *Store) write(name string, data []byte) error {
	m := s.medium()

	for attempt := 1; attempt <= writeAttempts; attempt++ {
		if err := m.Write(name, data); err != nil {
			s.log.Warn().Msgf("write %s to %s failed (attempt %d/%d): %v", name, m.Name(), attempt, writeAttempts, err)
			time.Sleep(writeRetryDelay)
			continue
		}
		back, err := m.Read(name)
		if err == nil && bytes.Equal(back, data) {
			return nil
		}
		s.log.Warn().Msgf("read-back of %s from %s failed (attempt %d/%d)", name, m.Name(), attempt, writeAttempts)
		time.Sleep(writeRetryDelay)
	}

	s.demote()
	if err := s.medium().Write(name, data); err != nil {
		return fmt.Errorf("write %s: all media exhausted: %w", name, err)
	}
	return fmt.Errorf("write %s to %s exhausted %d attempts, kept in memory only", name, m.Name(), writeAttempts)
}

func (s *Store) demote() {
	s.mu.Lock()
	defer s.mu.Unlock()

	last := len(s.media) - 1
	if s.active != last {
		s.log.Error().Msgf("storage medium %s failing, continuing with in-memory state only", s.media[s.active].Name())
		s.active = last
	}
}

// LoadSettings never fails: missing or corrupt records fall back to the
// defaults, field by field.
func (s *Store) LoadSettings() (*entity.Settings, error) {
	out := entity.DefaultSettings()

	data, err := s.medium().Read(settingsRecord)
	if err != nil {
		if err != ErrNotFound {
			s.log.Warn().Msgf("failed to read settings record: %v", err)
		}
		return out, nil
	}

	// The default-on-absent contract is explicit per field: absent or
	// mistyped fields keep their default instead of failing the load.
	var raw struct {
		SSID           *string `json:"ssid"`
		Password       *string `json:"password"`
		Volume         *int    `json:"volume"`
		DefaultStation *string `json:"default_station"`
		AutoPlay       *bool   `json:"auto_play"`
		AdminPassword  *string `json:"admin_password"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		s.log.Warn().Msgf("settings record corrupt, using defaults: %v", err)
		return out, nil
	}

	if raw.SSID != nil {
		out.SSID = *raw.SSID
	}
	if raw.Password != nil {
		out.Password = *raw.Password
	}
	if raw.Volume != nil && *raw.Volume >= entity.VolumeMin && *raw.Volume <= entity.VolumeMax {
		out.Volume = *raw.Volume
	}
	if raw.DefaultStation != nil {
		out.DefaultStation = *raw.DefaultStation
	}
	if raw.AutoPlay != nil {
		out.AutoPlay = *raw.AutoPlay
	}
	if raw.AdminPassword != nil {
		out.AdminPassword = *raw.AdminPassword
	}

	return out, nil
}

func (s *Store) SaveSettings(settings *entity.Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return s.write(settingsRecord, data)
}

func (s *Store) LoadStations() ([]entity.Station, error) {
	data, err := s.medium().Read(stationsRecord)
	if err != nil {
		if err != ErrNotFound {
			s.log.Warn().Msgf("failed to read stations record: %v", err)
		}
		return entity.DefaultStations(), nil
	}

	var wrapper struct {
		Stations []entity.Station `json:"stations"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		s.log.Warn().Msgf("stations record corrupt, using defaults: %v", err)
		return entity.DefaultStations(), nil
	}
	return wrapper.Stations, nil
}

func (s *Store) SaveStations(stations []entity.Station) error {
	wrapper := struct {
		Stations []entity.Station `json:"stations"`
	}{Stations: stations}

	data, err := json.MarshalIndent(wrapper, "", "  ")
	if err != nil {
		return err
	}
	return s.write(stationsRecord, data)
}

// LoadResume parses the fixed-layout fast record: two ASCII integers,
// station index and volume, one per line. Anything malformed is treated
// as no record.
func (s *Store) LoadResume() (*entity.ResumeRecord, error) {
	data, err := s.medium().Read(resumeRecord)
	if err != nil {
		return nil, err
	}

	rec := &entity.ResumeRecord{}
	if _, err := fmt.Sscanf(string(data), "%d\n%d", &rec.StationIndex, &rec.Volume); err != nil {
		s.log.Warn().Msgf("resume record malformed: %v", err)
		return nil, ErrNotFound
	}
	return rec, nil
}

func (s *Store) SaveResume(rec *entity.ResumeRecord) error {
	data := []byte(fmt.Sprintf("%d\n%d\n", rec.StationIndex, rec.Volume))
	return s.write(resumeRecord, data)
}
