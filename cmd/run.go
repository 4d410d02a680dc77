package cmd

import (
	"context"
	"errors"
	"net/http"
	_ "net/http/pprof" // pprof handler
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/willrr/ha-toyota-willrr/coordinator"
	"github.com/willrr/ha-toyota-willrr/sensor"
	"github.com/willrr/ha-toyota-willrr/server"
	"github.com/willrr/ha-toyota-willrr/util"
	"github.com/willrr/ha-toyota-willrr/util/pipe"
)

// the error param carries failure reasons which certain brokers choke on
var ignoreMqtt = []string{"error"}

// runCmd starts the polling daemon
var runCmd = &cobra.Command{
	Use:              "run",
	Short:            "Run the telemetry bridge",
	PersistentPreRun: persistentConfig,
	PreRun:           runConfig,
	Run:              runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runConfig(cmd *cobra.Command, args []string) {
	cmd.PersistentFlags().StringP(
		"uri", "u",
		"0.0.0.0:7070",
		"Listen address",
	)
	bind(cmd, "uri")

	cmd.PersistentFlags().DurationP(
		"interval", "i",
		coordinator.DefaultInterval,
		"Update interval",
	)
	bind(cmd, "interval")

	cmd.PersistentFlags().Bool(
		"metrics",
		false,
		"Expose metrics",
	)
	bind(cmd, "metrics")

	cmd.PersistentFlags().Bool(
		"profile",
		false,
		"Expose pprof profiles",
	)
	bind(cmd, "profile")

	viper.SetDefault("metric", true)
}

func runRun(cmd *cobra.Command, args []string) {
	util.LogLevel(viper.GetString("log"), viper.GetStringMapString("levels"))
	log.INFO.Printf("ha-toyota %s (%s)", server.Version, server.Commit)

	conf, err := loadConfigFile(cfgFile)
	if err != nil {
		log.FATAL.Fatal(err)
	}

	// re-configure logging after reading config file
	util.LogLevel(viper.GetString("log"), viper.GetStringMapString("levels"))

	coord, err := configureCoordinator(conf)
	if err != nil {
		log.FATAL.Fatal(err)
	}

	// login and eager first refresh
	if err := coord.Setup(context.Background()); err != nil {
		if errors.Is(err, coordinator.ErrAuthRequired) {
			log.FATAL.Fatal("authentication failed, check credentials: ", err)
		}
		log.FATAL.Fatal("setup failed, retry later: ", err)
	}

	// the sensor set is fixed from the first successful cycle
	sensors := sensor.ProjectAll(coord.Data(), conf.Metric)
	log.INFO.Printf("projecting %d sensors for %d vehicles", len(sensors), len(coord.Data()))

	// start broadcasting values
	tee := &util.Tee{}

	// value cache
	cache := util.NewCache()
	go cache.Run(tee.Attach())

	// setup mqtt publisher
	if conf.Mqtt.Broker != "" {
		publisher, err := configureMQTT(conf.Mqtt)
		if err != nil {
			log.FATAL.Fatal(err)
		}
		go publisher.Run(pipe.NewDropper(ignoreMqtt...).Pipe(tee.Attach()))
	}

	// setup values channel
	valueChan := make(chan util.Param)
	go tee.Run(valueChan)

	coord.Prepare(sensors, valueChan)

	// create webserver
	uri := viper.GetString("uri")
	httpd := server.NewHTTPd(uri, coord, sensors, cache)

	// metrics
	if viper.GetBool("metrics") {
		httpd.Router().Handle("/metrics", promhttp.Handler())
	}

	// pprof
	if viper.GetBool("profile") {
		httpd.Router().PathPrefix("/debug/").Handler(http.DefaultServeMux)
	}

	if addr, err := util.PublicAddr(uri); err == nil {
		log.INFO.Println("listening at", addr)
	}

	interval := viper.GetDuration("interval")
	if conf.Interval != 0 {
		interval = conf.Interval
	}

	stopC := make(chan struct{})
	exitC := make(chan struct{})

	go func() {
		coord.Run(stopC, interval)
		close(exitC)
	}()

	// catch signals
	go func() {
		signalC := make(chan os.Signal, 1)
		signal.Notify(signalC, os.Interrupt, syscall.SIGTERM)

		<-signalC    // wait for signal
		close(stopC) // signal loop to end

		select {
		case <-exitC: // wait for loop to end
		case <-time.NewTimer(interval).C: // wait max 1 period
		}

		os.Exit(1)
	}()

	log.FATAL.Println(httpd.ListenAndServe())
}
