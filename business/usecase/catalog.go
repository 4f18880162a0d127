package usecase

import (
	"errors"
	"sync"

	"radio-box-ng/business/entity"
	"radio-box-ng/pkg/logger"
)

var (
	ErrEmptyCatalog      = errors.New("catalog is empty")
	ErrIndexOutOfRange   = errors.New("station index out of range")
	ErrStationIncomplete = errors.New("station entry is incomplete")
)

// Catalog is the ordered station list. Identity is positional: removing
// or reordering entries shifts indexes, callers re-resolve afterwards.
type Catalog struct {
	mu       sync.RWMutex
	stations []entity.Station
	store    Store
	log      *logger.Zerolog
}

func NewCatalog(stations []entity.Station, store Store, log *logger.Zerolog) *Catalog {
	return &Catalog{
		stations: stations,
		store:    store,
		log:      log,
	}
}

func (c *Catalog) Add(st entity.Station) error {
	if st.Name == "" || st.URL == "" {
		return ErrStationIncomplete
	}

	c.mu.Lock()
	c.stations = append(c.stations, st)
	c.mu.Unlock()

	c.persist()
	return nil
}

func (c *Catalog) RemoveAt(index int) error {
	c.mu.Lock()
	if index < 0 || index >= len(c.stations) {
		c.mu.Unlock()
		return ErrIndexOutOfRange
	}
	c.stations = append(c.stations[:index], c.stations[index+1:]...)
	c.mu.Unlock()

	c.persist()
	return nil
}

func (c *Catalog) Get(index int) (entity.Station, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if index < 0 || index >= len(c.stations) {
		return entity.Station{}, ErrIndexOutOfRange
	}
	return c.stations[index], nil
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.stations)
}

// Next returns the index following the given one, wrapping around.
// An index of -1 (nothing selected yet) advances to the first entry.
func (c *Catalog) Next(index int) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.stations) == 0 {
		return 0, ErrEmptyCatalog
	}
	if index < 0 {
		return 0, nil
	}
	return (index + 1) % len(c.stations), nil
}

// FindIndexByURL returns the first entry with the given stream URL,
// or -1 when no entry matches.
func (c *Catalog) FindIndexByURL(url string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i, st := range c.stations {
		if st.URL == url {
			return i
		}
	}
	return -1
}

func (c *Catalog) All() []entity.Station {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]entity.Station, len(c.stations))
	copy(out, c.stations)
	return out
}

func (c *Catalog) persist() {
	if c.store == nil {
		return
	}
	if err := c.store.SaveStations(c.All()); err != nil {
		c.log.Error().Msgf("failed to persist station catalog: %v", err)
	}
}
