package entity

// Settings is the persisted device configuration record.
type Settings struct {
	SSID           string `json:"ssid"`
	Password       string `json:"password"`
	Volume         int    `json:"volume"`
	DefaultStation string `json:"default_station"`
	AutoPlay       bool   `json:"auto_play"`
	AdminPassword  string `json:"admin_password"`
}

func DefaultSettings() *Settings {
	return &Settings{
		Volume:   12,
		AutoPlay: false,
	}
}

func DefaultStations() []Station {
	return []Station{
		{Name: "SomaFM Groove Salad", URL: "http://ice1.somafm.com/groovesalad-128-mp3", Genre: "ambient"},
		{Name: "SomaFM Drone Zone", URL: "http://ice1.somafm.com/dronezone-128-mp3", Genre: "ambient"},
		{Name: "Radio Paradise", URL: "http://stream.radioparadise.com/mp3-128", Genre: "eclectic"},
	}
}
