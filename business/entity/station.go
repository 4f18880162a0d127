package entity

type Station struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Genre string `json:"genre"`
}

// ResumeRecord is the fast-persist pair written on every station or
// volume change, kept separate from the JSON records so resume does
// not depend on parsing the full configuration.
type ResumeRecord struct {
	StationIndex int
	Volume       int
}
