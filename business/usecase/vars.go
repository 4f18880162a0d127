package usecase

import (
	"radio-box-ng/adapter/broker"
	"radio-box-ng/business/entity"
)

type Player interface {
	Play(url string) error
	Stop()
	SetVolume(level int)
	SetMetadataCallback(cb entity.MetadataCallback)
	SetStreamEndedCallback(cb entity.StreamEndedCallback)
}

type Broker interface {
	Start() error
	PublishState(data []byte)
	Subscribe(topic string, handler broker.MessageHandler)
	SetConnectHandler(h broker.ConnectHandler)
	SetDisconnectHandler(h broker.DisconnectHandler)
}

type Store interface {
	LoadSettings() (*entity.Settings, error)
	SaveSettings(s *entity.Settings) error
	LoadStations() ([]entity.Station, error)
	SaveStations(stations []entity.Station) error
	LoadResume() (*entity.ResumeRecord, error)
	SaveResume(r *entity.ResumeRecord) error
}

type Metrics interface {
	StreamStarted()
	StreamFailed()
	StreamReconnected()
	ButtonPressed(kind string)
	SetPlaying(playing bool)
}

// NoopMetrics is used when the metrics endpoint is disabled.
type NoopMetrics struct{}

func (NoopMetrics) StreamStarted()       {}
func (NoopMetrics) StreamFailed()        {}
func (NoopMetrics) StreamReconnected()   {}
func (NoopMetrics) ButtonPressed(string) {}
func (NoopMetrics) SetPlaying(bool)      {}

var (
	stateTopic string
)

func SetStateTopic(t string) {
	stateTopic = t
}
