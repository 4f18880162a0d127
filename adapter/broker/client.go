package broker

import (
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"radio-box-ng/pkg/logger"
)

type MessageHandler func(topic string, payload []byte)
type ConnectHandler func()
type DisconnectHandler func(err error)

type Config struct {
	Host       string
	Port       int
	StateTopic string
	ClientID   string
	UserName   string
	Password   string
}

const connectTimeout = 5 * time.Second

// Client publishes the device state to the broker and lets companions
// subscribe to it. Connection loss is handled by paho's auto reconnect.
type Client struct {
	cfg               *Config
	log               *logger.Zerolog
	client            mqtt.Client
	connectHandler    ConnectHandler
	disconnectHandler DisconnectHandler
}

func NewBrokerClient(cfg *Config, log *logger.Zerolog) (*Client, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("broker host is not set")
	}

	c := &Client{
		cfg: cfg,
		log: log,
	}

	opts := mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.Host, cfg.Port)).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.UserName).
		SetPassword(cfg.Password).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout)

	opts.OnConnect = func(_ mqtt.Client) {
		c.log.Debug().Msgf("connected to broker %s:%d", cfg.Host, cfg.Port)
		if c.connectHandler != nil {
			c.connectHandler()
		}
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		c.log.Error().Msgf("broker connection lost: %v", err)
		if c.disconnectHandler != nil {
			c.disconnectHandler(err)
		}
	}

	c.client = mqtt.NewClient(opts)

	return c, nil
}

func (c *Client) Start() error {
	token := c.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("timed out connecting to broker %s:%d", c.cfg.Host, c.cfg.Port)
	}
	return token.Error()
}

func (c *Client) PublishState(data []byte) {
	if !c.client.IsConnected() {
		return
	}
	c.client.Publish(c.cfg.StateTopic, 0, true, data)
}

func (c *Client) Subscribe(topic string, handler MessageHandler) {
	c.client.Subscribe(topic, 0, func(_ mqtt.Client, msg mqtt.Message) {
		handler(msg.Topic(), msg.Payload())
	})
}

func (c *Client) SetConnectHandler(h ConnectHandler) {
	c.connectHandler = h
}

func (c *Client) SetDisconnectHandler(h DisconnectHandler) {
	c.disconnectHandler = h
}

func (c *Client) Close() {
	if c.client != nil && c.client.IsConnected() {
		c.client.Disconnect(250)
	}
}
