package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"radio-box-ng/business/entity"
	"radio-box-ng/pkg/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(&Config{
		DataDir:     filepath.Join(t.TempDir(), "data"),
		FallbackDir: filepath.Join(t.TempDir(), "fallback"),
	}, logger.NewDefaultZerolog())
}

func TestSettingsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	in := &entity.Settings{
		SSID:           "home",
		Password:       "secret",
		Volume:         7,
		DefaultStation: "http://a.example/stream",
		AutoPlay:       true,
		AdminPassword:  "admin",
	}
	if err := s.SaveSettings(in); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	out, err := s.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if *out != *in {
		t.Errorf("round trip mismatch: %+v vs %+v", out, in)
	}
}

func TestLoadSettingsMissingUsesDefaults(t *testing.T) {
	s := newTestStore(t)

	out, err := s.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if *out != *entity.DefaultSettings() {
		t.Errorf("missing record: got %+v, want defaults", out)
	}
}

func TestLoadSettingsDefaultsPerField(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	s := NewStore(&Config{DataDir: dir}, logger.NewDefaultZerolog())

	tests := []struct {
		name string
		raw  string
		want entity.Settings
	}{
		{
			name: "partial record keeps defaults for absent fields",
			raw:  `{"ssid":"home"}`,
			want: entity.Settings{SSID: "home", Volume: 12},
		},
		{
			name: "out of range volume falls back",
			raw:  `{"ssid":"home","volume":99}`,
			want: entity.Settings{SSID: "home", Volume: 12},
		},
		{
			name: "corrupt record falls back entirely",
			raw:  `{"ssid":`,
			want: *entity.DefaultSettings(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "conf", "settings.json")
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(path, []byte(tt.raw), 0o644); err != nil {
				t.Fatal(err)
			}

			out, err := s.LoadSettings()
			if err != nil {
				t.Fatalf("LoadSettings: %v", err)
			}
			if *out != tt.want {
				t.Errorf("got %+v, want %+v", out, tt.want)
			}
		})
	}
}

func TestStationsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	in := []entity.Station{
		{Name: "A", URL: "http://a.example", Genre: "jazz"},
		{Name: "B", URL: "http://b.example", Genre: "rock"},
	}
	if err := s.SaveStations(in); err != nil {
		t.Fatalf("SaveStations: %v", err)
	}

	out, err := s.LoadStations()
	if err != nil {
		t.Fatalf("LoadStations: %v", err)
	}
	if len(out) != 2 || out[0] != in[0] || out[1] != in[1] {
		t.Errorf("round trip mismatch: %+v", out)
	}
}

func TestLoadStationsMissingUsesDefaults(t *testing.T) {
	s := newTestStore(t)

	out, err := s.LoadStations()
	if err != nil {
		t.Fatalf("LoadStations: %v", err)
	}
	if len(out) == 0 {
		t.Error("missing stations record produced an empty catalog")
	}
}

func TestResumeRecord(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveResume(&entity.ResumeRecord{StationIndex: 3, Volume: 15}); err != nil {
		t.Fatalf("SaveResume: %v", err)
	}

	rec, err := s.LoadResume()
	if err != nil {
		t.Fatalf("LoadResume: %v", err)
	}
	if rec.StationIndex != 3 || rec.Volume != 15 {
		t.Errorf("got %+v, want {3 15}", rec)
	}
}

func TestResumeRecordMalformed(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	s := NewStore(&Config{DataDir: dir}, logger.NewDefaultZerolog())

	path := filepath.Join(dir, "state", "resume")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not numbers"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := s.LoadResume(); err == nil {
		t.Error("malformed resume record did not report an error")
	}
}

func TestTierFallback(t *testing.T) {
	// The primary dir cannot be created below an existing file, so the
	// store must come up on the flat fallback tier.
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	fallback := filepath.Join(tmp, "fallback")
	s := NewStore(&Config{
		DataDir:     filepath.Join(blocker, "data"),
		FallbackDir: fallback,
	}, logger.NewDefaultZerolog())

	if err := s.SaveResume(&entity.ResumeRecord{StationIndex: 1, Volume: 5}); err != nil {
		t.Fatalf("SaveResume on fallback tier: %v", err)
	}

	if _, err := os.Stat(filepath.Join(fallback, "state_resume")); err != nil {
		t.Errorf("flat fallback file not written: %v", err)
	}

	rec, err := s.LoadResume()
	if err != nil || rec.StationIndex != 1 {
		t.Errorf("LoadResume via fallback = %+v, %v", rec, err)
	}
}

func TestMemoryTierOfLastResort(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStore(&Config{
		DataDir:     filepath.Join(blocker, "data"),
		FallbackDir: filepath.Join(blocker, "fallback"),
	}, logger.NewDefaultZerolog())

	if err := s.SaveResume(&entity.ResumeRecord{StationIndex: 2, Volume: 9}); err != nil {
		t.Fatalf("SaveResume on memory tier: %v", err)
	}
	rec, err := s.LoadResume()
	if err != nil || rec.StationIndex != 2 || rec.Volume != 9 {
		t.Errorf("LoadResume via memory = %+v, %v", rec, err)
	}
}

type flakyMedium struct {
	failures int
	writes   int
	inner    *MemoryMedium
}

func (m *flakyMedium) Name() string    { return "flaky" }
func (m *flakyMedium) Available() bool { return true }

func (m *flakyMedium) Read(name string) ([]byte, error) {
	return m.inner.Read(name)
}

func (m *flakyMedium) Write(name string, data []byte) error {
	m.writes++
	if m.writes <= m.failures {
		return errors.New("write error")
	}
	return m.inner.Write(name, data)
}

func TestWriteRetries(t *testing.T) {
	m := &flakyMedium{failures: 3, inner: NewMemoryMedium()}
	s := &Store{log: logger.NewDefaultZerolog(), media: []Medium{m, NewMemoryMedium()}, active: 0}

	if err := s.write("state/resume", []byte("1\n2\n")); err != nil {
		t.Fatalf("write with transient failures: %v", err)
	}
	if m.writes != 4 {
		t.Errorf("writes = %d, want 4 (3 failures + 1 success)", m.writes)
	}
}

func TestWriteExhaustionDemotesToMemory(t *testing.T) {
	m := &flakyMedium{failures: 100, inner: NewMemoryMedium()}
	s := &Store{log: logger.NewDefaultZerolog(), media: []Medium{m, NewMemoryMedium()}, active: 0}

	if err := s.write("state/resume", []byte("1\n2\n")); err == nil {
		t.Fatal("exhausted write reported success")
	}
	if m.writes != writeAttempts {
		t.Errorf("writes = %d, want %d", m.writes, writeAttempts)
	}

	// state remains readable from the memory tier
	data, err := s.medium().Read("state/resume")
	if err != nil || string(data) != "1\n2\n" {
		t.Errorf("record not preserved in memory tier: %q, %v", data, err)
	}
}
