/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gotrap/InputParameters"
	"github.com/notargets/gotrap/events"
	"github.com/notargets/gotrap/simulator"
)

type RunModel struct {
	InputFile  string
	OutputDir  string
	ProcLimit  int
	Profile    bool
	ProfileDir string
	Quiet      bool
}

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Compute the pressure field of a transducer array and export slices",
	Long: `
Reads a transducer array and simulation geometry (JSON or YAML), computes the
pressure field, and writes one CSV file per depth slice and output kind.

gotrap run -I array.yaml -o out --procs 8`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		rm := &RunModel{}
		if rm.InputFile, err = cmd.Flags().GetString("inputFile"); err != nil {
			panic(err)
		}
		if rm.Profile, err = cmd.Flags().GetBool("profile"); err != nil {
			panic(err)
		}
		if rm.ProfileDir, err = cmd.Flags().GetString("profileDir"); err != nil {
			panic(err)
		}
		if rm.Quiet, err = cmd.Flags().GetBool("quiet"); err != nil {
			panic(err)
		}
		rm.OutputDir = viper.GetString("outputDir")
		rm.ProcLimit = viper.GetInt("procLimit")
		if len(rm.InputFile) == 0 {
			fmt.Printf("error: must supply an input file (-I, --inputFile)\n")
			os.Exit(1)
		}
		if _, err = RunProfiled(rm); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(RunCmd)
	RunCmd.Flags().StringP("inputFile", "I", "", "JSON or YAML file holding the transducers and simulation geometry")
	RunCmd.Flags().StringP("outputDir", "o", ".", "directory receiving the exported CSV slices")
	RunCmd.Flags().IntP("procs", "p", 0, "maximum number of parallel workers, 0 = one per CPU")
	RunCmd.Flags().Bool("profile", false, "write a CPU profile of the run")
	RunCmd.Flags().String("profileDir", ".", "directory receiving the CPU profile")
	RunCmd.Flags().BoolP("quiet", "q", false, "suppress per slab progress output")
	viper.BindPFlag("outputDir", RunCmd.Flags().Lookup("outputDir"))
	viper.BindPFlag("procLimit", RunCmd.Flags().Lookup("procs"))
}

// RunProfiled is Run wrapped in a CPU profile when rm.Profile is set. The
// profile is flushed before returning, on failure too.
func RunProfiled(rm *RunModel) (rpt *simulator.Report, err error) {
	if rm.Profile {
		prof := profile.Start(profile.CPUProfile, profile.ProfilePath(rm.ProfileDir), profile.NoShutdownHook)
		defer prof.Stop()
	}
	return Run(rm)
}

// Run loads and validates the input file, then computes and exports the field.
func Run(rm *RunModel) (rpt *simulator.Report, err error) {
	var (
		store *InputParameters.Store
		snap  *InputParameters.Snapshot
	)
	if store, err = InputParameters.NewStore(nil); err != nil {
		return
	}
	if snap, err = store.LoadFile(rm.InputFile); err != nil {
		return
	}
	snap.Packet.Print()
	var (
		broker = events.NewBroker(64)
		sub    = broker.Subscribe(simulator.Topic)
		done   = make(chan struct{})
	)
	go func() {
		defer close(done)
		for msg := range sub.C {
			if !rm.Quiet {
				fmt.Println(msg.Body)
			}
		}
	}()
	rpt, err = simulator.ComputeAndExport(snap.Packet, simulator.Options{
		OutputDir: rm.OutputDir,
		ProcLimit: rm.ProcLimit,
		Broker:    broker,
		Logger:    log.New(os.Stdout, "", log.LstdFlags),
	})
	broker.Close()
	<-done
	return
}
