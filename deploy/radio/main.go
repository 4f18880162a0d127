package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/soellman/pidfile"

	"radio-box-ng/adapter/broker"
	"radio-box-ng/adapter/gpio"
	"radio-box-ng/adapter/httpapi"
	"radio-box-ng/adapter/shoutcast"
	"radio-box-ng/adapter/storage"
	"radio-box-ng/adapter/wifi"
	"radio-box-ng/business/entity"
	"radio-box-ng/business/usecase"
	"radio-box-ng/pkg/logger"
)

var (
	cfg *Config
	log *logger.Zerolog

	brokerClient *broker.Client
	mp3player    *shoutcast.MP3Shoutcast
	store        *storage.Store
	pad          gpio.Pad
	httpServer   *httpapi.Server

	catalog      *usecase.Catalog
	radioUseCase *usecase.RadioUseCase

	apMode bool
)

const pidFile = "/tmp/radio-box.pid"

// GOOS=linux GOARCH=arm go build

func main() {
	defer shutdown()

	var err error
	cfg, err = loadConfig()
	if err != nil {
		logger.NewDefaultZerolog().Fatal().Msgf("failed to load config: %v", err)
	}

	log = logger.NewZerolog(logger.ZeroConfig{
		Level:             cfg.Logger.Level,
		TimeFieldFormat:   cfg.Logger.TimeFieldFormat,
		PrettyPrint:       cfg.Logger.PrettyPrint,
		DisableSampling:   cfg.Logger.DisableSampling,
		RedirectStdLogger: cfg.Logger.RedirectStdLogger,
		ErrorStack:        cfg.Logger.ErrorStack,
		ShowCaller:        cfg.Logger.ShowCaller,
	})

	if err := pidfile.Write(pidFile); err != nil {
		log.Fatal().Msgf("failed to create pid file: %v", err)
	}

	initAdapters()
	initUseCases()

	go deviceLoop()
	go func() {
		if err := httpServer.Start(); err != nil {
			log.Fatal().Msgf("http server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
}

func initAdapters() {
	store = storage.NewStore(&storage.Config{
		DataDir:     cfg.Storage.DataDir,
		FallbackDir: cfg.Storage.FallbackDir,
	}, log)

	mp3player = shoutcast.NewMP3Shoutcast(&shoutcast.Config{}, log)

	if cfg.Broker.Enabled {
		var err error
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
		if err := brokerClient.Start(); err != nil {
			log.Error().Msgf("broker unavailable, state publishing disabled: %v", err)
		}
	}

	if cfg.GPIO.Enabled {
		p, err := gpio.NewRPiPad(&gpio.Config{
			ButtonPin: cfg.GPIO.ButtonPin,
			LedPin:    cfg.GPIO.LedPin,
		}, log)
		if err != nil {
			log.Error().Msgf("gpio unavailable: %v", err)
			pad = gpio.NoopPad{}
		} else {
			pad = p
		}
	} else {
		pad = gpio.NoopPad{}
	}
}

func initUseCases() {
	usecase.SetStateTopic(cfg.Broker.StateTopic)

	settings, err := store.LoadSettings()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	stations, err := store.LoadStations()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	if cfg.WiFi.Enabled {
		wifiManager := wifi.NewManager(&wifi.Config{
			Interface:  cfg.WiFi.Interface,
			APSSID:     cfg.WiFi.APSSID,
			APPassword: cfg.WiFi.APPassword,
		}, log)
		apMode = wifiManager.EnsureNetwork(settings.SSID, settings.Password)
	}

	catalog = usecase.NewCatalog(stations, store, log)

	var metrics usecase.Metrics = httpapi.NewMetrics()
	var ucBroker usecase.Broker
	if brokerClient != nil {
		ucBroker = brokerClient
	}

	radioUseCase = usecase.NewRadioUseCase(&usecase.RadioConfig{
		ReconnectDelay: time.Duration(cfg.Stream.ReconnectDelayMs) * time.Millisecond,
	}, mp3player, ucBroker, store, catalog, metrics, settings, log)

	radioUseCase.ResumeFromPersisted()

	if settings.AutoPlay && !apMode {
		if err := radioUseCase.StartLast(); err != nil {
			log.Error().Msgf("autoplay: %v", err)
		}
	}

	httpServer = httpapi.NewServer(&httpapi.Config{
		Addr:  cfg.HTTP.Addr,
		Debug: cfg.HTTP.Debug,
	}, radioUseCase, catalog, restart, log)
}

// deviceLoop services the button, the status LED and the sleep timer.
func deviceLoop() {
	classifier := usecase.NewButtonClassifier()
	tick := time.Duration(cfg.Loop.TickMs) * time.Millisecond
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	var ticks int
	for range ticker.C {
		now := time.Now().UnixMilli()
		ticks++

		if ev := classifier.Sample(pad.ButtonPressed(), now); ev != entity.ButtonNone {
			radioUseCase.HandleButton(ev)
		}

		radioUseCase.ServiceTick(now)

		switch {
		case apMode:
			// slow blink while waiting for configuration
			pad.SetLed(ticks%20 < 10)
		default:
			pad.SetLed(radioUseCase.Status().Playing)
		}
	}
}

// restart hands control back to the supervisor after a config save.
func restart() {
	log.Info().Msg("configuration saved, restarting")
	time.Sleep(500 * time.Millisecond)

	p, err := os.FindProcess(os.Getpid())
	if err != nil {
		os.Exit(0)
	}
	_ = p.Signal(syscall.SIGTERM)
}

func shutdown() {
	if r := recover(); r != nil {
		fmt.Println(r)
	}
	_ = pidfile.Remove(pidFile)
	if radioUseCase != nil {
		radioUseCase.Stop()
	}
	if pad != nil {
		pad.Close()
	}
	if brokerClient != nil {
		brokerClient.Close()
	}
}
