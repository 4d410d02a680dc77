package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/willrr/ha-toyota-willrr/api"
	"github.com/willrr/ha-toyota-willrr/sensor"
	"github.com/willrr/ha-toyota-willrr/server"
	"github.com/willrr/ha-toyota-willrr/util"
	"github.com/willrr/ha-toyota-willrr/vehicle"
)

// vehicleCmd dumps vehicles and their current sensor values once
var vehicleCmd = &cobra.Command{
	Use:              "vehicle [vin]",
	Short:            "Query vehicles and dump current sensor values",
	PersistentPreRun: persistentConfig,
	Run:              vehicleRun,
}

func init() {
	rootCmd.AddCommand(vehicleCmd)
}

func vehicleRun(cmd *cobra.Command, args []string) {
	util.LogLevel(viper.GetString("log"), viper.GetStringMapString("levels"))
	log.INFO.Printf("ha-toyota %s (%s)", server.Version, server.Commit)

	conf, err := loadConfigFile(cfgFile)
	if err != nil {
		log.FATAL.Fatal(err)
	}

	coord, err := configureCoordinator(conf)
	if err != nil {
		log.FATAL.Fatal(err)
	}

	if err := coord.Setup(context.Background()); err != nil {
		log.FATAL.Fatal(err)
	}

	data := coord.Data()

	if len(args) == 1 {
		vehicles := make([]api.Vehicle, 0, len(data))
		for _, snap := range data {
			vehicles = append(vehicles, snap.Vehicle)
		}

		veh, err := vehicle.Ensure(args[0], vehicles)
		if err != nil {
			log.FATAL.Fatal(err)
		}

		snap, _ := data.Vehicle(veh.VIN)
		data = api.CycleResult{snap}
	}

	for _, snap := range data {
		dumpVehicle(snap, conf.Metric)
	}
}

func dumpVehicle(snap api.VehicleSnapshot, metric bool) {
	name := snap.Vehicle.VIN
	if snap.Vehicle.Alias != "" {
		name = fmt.Sprintf("%s (%s)", snap.Vehicle.Alias, snap.Vehicle.VIN)
	}
	fmt.Println(name)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Sensor", "Value", "Unit"})

	for _, s := range sensor.Project(snap, metric) {
		value := "-"
		if val := s.Value(snap); val != nil {
			value = fmt.Sprintf("%v", val)
		}

		table.Append([]string{s.Key, value, s.Unit})
	}

	table.Render()
	fmt.Println()
}
