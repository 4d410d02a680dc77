package server

import (
	"fmt"
	"strconv"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/willrr/ha-toyota-willrr/util"
)

const mqttConnectTimeout = 5 * time.Second

// MQTT is the publishing end of the value pipeline
type MQTT struct {
	log     *util.Logger
	Handler paho.Client
	root    string
}

// MQTTConfig is the publisher configuration
type MQTTConfig struct {
	Broker   string
	User     string
	Password string
	ClientID string
	Topic    string
}

// NewMQTT creates an MQTT publisher and connects to the broker
func NewMQTT(conf MQTTConfig) (*MQTT, error) {
	log := util.NewLogger("mqtt")

	if conf.ClientID == "" {
		conf.ClientID = "toyota-bridge"
	}
	if conf.Topic == "" {
		conf.Topic = "toyota"
	}

	options := paho.NewClientOptions()
	options.AddBroker(conf.Broker)
	options.SetUsername(conf.User)
	options.SetPassword(conf.Password)
	options.SetClientID(conf.ClientID)
	options.SetAutoReconnect(true)
	options.SetOnConnectHandler(func(paho.Client) {
		log.INFO.Printf("connected to %s", conf.Broker)
	})
	options.SetConnectionLostHandler(func(_ paho.Client, err error) {
		log.ERROR.Printf("connection lost: %v", err)
	})

	client := paho.NewClient(options)

	token := client.Connect()
	if !token.WaitTimeout(mqttConnectTimeout) {
		return nil, fmt.Errorf("mqtt: connect timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt: %w", err)
	}

	return &MQTT{
		log:     log,
		Handler: client,
		root:    conf.Topic,
	}, nil
}

func (m *MQTT) encode(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		return strconv.FormatInt(val.Unix(), 10)
	case time.Duration:
		return fmt.Sprintf("%d", int64(val.Seconds()))
	default:
		return fmt.Sprintf("%v", val)
	}
}

func (m *MQTT) publish(topic string, retained bool, payload interface{}) {
	token := m.Handler.Publish(topic, 1, retained, m.encode(payload))
	go func() {
		token.Wait()
		if err := token.Error(); err != nil {
			m.log.ERROR.Printf("publish %s: %v", topic, err)
		}
	}()
}

// Run publishes params from the pipeline to per-vehicle topics
func (m *MQTT) Run(in <-chan util.Param) {
	for p := range in {
		topic := m.root
		if p.Vehicle != "" {
			topic = fmt.Sprintf("%s/%s", topic, p.Vehicle)
		}
		topic = fmt.Sprintf("%s/%s", topic, p.Key)

		m.publish(topic, true, p.Val)
	}
}
