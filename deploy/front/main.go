package main

import (
	"os"
	"os/signal"
	"syscall"

	"radio-box-ng/adapter/broker"
	"radio-box-ng/business/usecase"
	"radio-box-ng/pkg/logger"
)

var (
	log *logger.Zerolog

	brokerClient *broker.Client

	notifyUseCase *usecase.NotifyUseCase
)

func main() {
	defer shutdown()

	cfg, err := loadConfig()
	if err != nil {
		logger.NewDefaultZerolog().Fatal().Msgf("failed to load config: %v", err)
	}

	log = logger.NewZerolog(logger.ZeroConfig{
		Level:       cfg.Logger.Level,
		PrettyPrint: cfg.Logger.PrettyPrint,
	})

	brokerClient, err = broker.NewBrokerClient(&broker.Config{
		Host:       cfg.Broker.Host,
		Port:       cfg.Broker.Port,
		StateTopic: cfg.Broker.StateTopic,
		ClientID:   cfg.Broker.ClientID,
		UserName:   cfg.Broker.UserName,
		Password:   cfg.Broker.Password,
	}, log)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	usecase.SetStateTopic(cfg.Broker.StateTopic)

	notifyUseCase, err = usecase.NewNotifyUseCase(brokerClient, log)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
}

func shutdown() {
	if brokerClient != nil {
		brokerClient.Close()
	}
}
