package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"github.com/willrr/ha-toyota-willrr/coordinator"
	"github.com/willrr/ha-toyota-willrr/core/storage"
	"github.com/willrr/ha-toyota-willrr/server"
	"github.com/willrr/ha-toyota-willrr/util"
	"github.com/willrr/ha-toyota-willrr/vehicle/toyota"
)

type config struct {
	URI         string
	Log         string
	Levels      map[string]string
	Interval    time.Duration
	Timeout     time.Duration
	Metric      bool
	Vehicles    []string
	Credentials credentialsConfig
	Mqtt        mqttConfig
	Statistics  statisticsConfig
}

type credentialsConfig struct {
	Email    string
	Password string
	Locale   string
}

type mqttConfig struct {
	Broker   string
	User     string
	Password string
	ClientID string `mapstructure:"clientid"`
	Topic    string
}

type statisticsConfig struct {
	Path string
}

// loadConfigFile parses the resolved config file
func loadConfigFile(cfgFile string) (conf config, err error) {
	if cfgFile == "" {
		return conf, errors.New("missing config file")
	}

	log.INFO.Println("using config file", cfgFile)

	err = viper.Unmarshal(&conf, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		err = fmt.Errorf("failed parsing config file %s: %w", cfgFile, err)
	}

	return conf, err
}

// configureCoordinator builds client and coordinator from the configuration
func configureCoordinator(conf config) (*coordinator.Coordinator, error) {
	if conf.Credentials.Email == "" || conf.Credentials.Password == "" {
		return nil, errors.New("missing credentials")
	}

	tlog := util.NewLogger("toyota")
	identity := toyota.NewIdentity(tlog, conf.Credentials.Email, conf.Credentials.Password, conf.Credentials.Locale)
	client := toyota.NewAPI(tlog, identity, conf.Metric)

	coord := coordinator.New(util.NewLogger("coord"), client, coordinator.Config{
		Interval: conf.Interval,
		Timeout:  conf.Timeout,
		Vehicles: conf.Vehicles,
	})

	if conf.Statistics.Path != "" {
		store, err := storage.Open(conf.Statistics.Path, util.NewLogger("sqlite"))
		if err != nil {
			return nil, fmt.Errorf("open statistics database: %w", err)
		}
		coord.WithStore(store)
	}

	return coord, nil
}

func configureMQTT(conf mqttConfig) (*server.MQTT, error) {
	return server.NewMQTT(server.MQTTConfig{
		Broker:   conf.Broker,
		User:     conf.User,
		Password: conf.Password,
		ClientID: conf.ClientID,
		Topic:    conf.Topic,
	})
}
