package usecase

import (
	"testing"

	"radio-box-ng/business/entity"
	"radio-box-ng/pkg/logger"
)

func testStations() []entity.Station {
	return []entity.Station{
		{Name: "A", URL: "http://a.example/stream", Genre: "jazz"},
		{Name: "B", URL: "http://b.example/stream", Genre: "rock"},
		{Name: "C", URL: "http://c.example/stream", Genre: "ambient"},
	}
}

func TestCatalogNextWrapsAround(t *testing.T) {
	c := NewCatalog(testStations(), nil, logger.NewDefaultZerolog())

	for start := 0; start < c.Len(); start++ {
		i := start
		for n := 0; n < c.Len(); n++ {
			var err error
			i, err = c.Next(i)
			if err != nil {
				t.Fatalf("Next(%d): %v", i, err)
			}
		}
		if i != start {
			t.Errorf("Next applied %d times from %d ended at %d, want %d", c.Len(), start, i, start)
		}
	}
}

func TestCatalogNextEmpty(t *testing.T) {
	c := NewCatalog(nil, nil, logger.NewDefaultZerolog())

	if _, err := c.Next(0); err != ErrEmptyCatalog {
		t.Errorf("Next on empty catalog = %v, want ErrEmptyCatalog", err)
	}
}

func TestCatalogNextFromUnset(t *testing.T) {
	c := NewCatalog(testStations(), nil, logger.NewDefaultZerolog())

	i, err := c.Next(-1)
	if err != nil || i != 0 {
		t.Errorf("Next(-1) = %d, %v; want 0, nil", i, err)
	}
}

func TestCatalogRemoveAt(t *testing.T) {
	tests := []struct {
		name     string
		stations []entity.Station
		index    int
		wantErr  bool
		wantLen  int
	}{
		{"first", testStations(), 0, false, 2},
		{"last", testStations(), 2, false, 2},
		{"negative", testStations(), -1, true, 3},
		{"past end", testStations(), 3, true, 3},
		{"empty", nil, 0, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCatalog(tt.stations, nil, logger.NewDefaultZerolog())

			err := c.RemoveAt(tt.index)
			if (err != nil) != tt.wantErr {
				t.Errorf("RemoveAt(%d) error = %v, wantErr %v", tt.index, err, tt.wantErr)
			}
			if c.Len() != tt.wantLen {
				t.Errorf("length after RemoveAt = %d, want %d", c.Len(), tt.wantLen)
			}
		})
	}
}

func TestCatalogAddValidation(t *testing.T) {
	c := NewCatalog(nil, nil, logger.NewDefaultZerolog())

	if err := c.Add(entity.Station{Name: "X"}); err != ErrStationIncomplete {
		t.Errorf("Add without url = %v, want ErrStationIncomplete", err)
	}
	if err := c.Add(entity.Station{Name: "X", URL: "http://x.example"}); err != nil {
		t.Errorf("Add = %v, want nil", err)
	}
	if c.Len() != 1 {
		t.Errorf("length = %d, want 1", c.Len())
	}
}

func TestCatalogFindIndexByURL(t *testing.T) {
	c := NewCatalog(testStations(), nil, logger.NewDefaultZerolog())

	if i := c.FindIndexByURL("http://b.example/stream"); i != 1 {
		t.Errorf("FindIndexByURL = %d, want 1", i)
	}
	if i := c.FindIndexByURL("http://nope.example"); i != -1 {
		t.Errorf("FindIndexByURL unresolved = %d, want -1", i)
	}
}

func TestCatalogMutationPersists(t *testing.T) {
	store := newFakeStore()
	c := NewCatalog(testStations(), store, logger.NewDefaultZerolog())

	if err := c.Add(entity.Station{Name: "D", URL: "http://d.example"}); err != nil {
		t.Fatal(err)
	}
	if err := c.RemoveAt(0); err != nil {
		t.Fatal(err)
	}

	if store.stationSaves != 2 {
		t.Errorf("station catalog persisted %d times, want 2", store.stationSaves)
	}
	if len(store.stations) != 3 {
		t.Errorf("persisted catalog has %d entries, want 3", len(store.stations))
	}
}
