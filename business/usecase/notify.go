package usecase

import (
	"encoding/json"
	"regexp"

	"github.com/gen2brain/beeep"

	"radio-box-ng/business/entity"
	"radio-box-ng/pkg/logger"
)

// NotifyUseCase drives the desktop companion: it subscribes to the state
// topic and raises a notification when the track changes.
type NotifyUseCase struct {
	broker    Broker
	log       *logger.Zerolog
	lastTitle string
}

var (
	trackRe = regexp.MustCompile("[[:^ascii:]]")
)

func NewNotifyUseCase(broker Broker, log *logger.Zerolog) (*NotifyUseCase, error) {
	uc := &NotifyUseCase{
		broker: broker,
		log:    log,
	}

	uc.broker.SetConnectHandler(uc.OnConnect)

	return uc, uc.broker.Start()
}

func (uc *NotifyUseCase) OnConnect() {
	uc.broker.Subscribe(stateTopic, func(topic string, payload []byte) {
		uc.log.Debug().Msgf("%s - %s", topic, string(payload))

		status, err := uc.parseStatus(payload)
		if err != nil {
			uc.log.Error().Msgf("failed to parse state: %v", err)
			return
		}

		uc.notify(status)
	})
}

func (uc *NotifyUseCase) parseStatus(payload []byte) (*entity.Status, error) {
	status := &entity.Status{}
	if err := json.Unmarshal(payload, status); err != nil {
		return nil, err
	}
	return status, nil
}

func (uc *NotifyUseCase) notify(status *entity.Status) {
	if len(status.Title) == 0 || status.Title == uc.lastTitle {
		return
	}
	uc.lastTitle = status.Title

	title := status.Station
	if title == "" {
		title = "radio-box"
	}
	if !status.Playing {
		title += " [OFF]"
	}

	if err := beeep.Notify(title, uc.prepareTrackName(status.Title), ""); err != nil {
		uc.log.Error().Msgf("failed to show notification: %v", err)
	}
}

func (uc *NotifyUseCase) prepareTrackName(t string) string {
	// David Helpling & Jon Jenkins - Two Paths
	return trackRe.ReplaceAllLiteralString(t, "")
}
