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
	"os"

	"github.com/spf13/cobra"

	"github.com/notargets/gotrap/InputParameters"
	"github.com/notargets/gotrap/geometry"
	"github.com/notargets/gotrap/transducer"
)

// InitCmd represents the init command
var InitCmd = &cobra.Command{
	Use:   "init <file>",
	Short: "Write a starter transducer array file (.json, .yaml or .yml)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")
		if err := WriteStarter(args[0], force); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(InitCmd)
	InitCmd.Flags().BoolP("force", "f", false, "overwrite an existing file")
}

// StarterPacket is a single 40 kHz piston above a box along its axis.
func StarterPacket() (cp *InputParameters.ConfigPacket) {
	cp = InputParameters.DefaultConfigPacket()
	cp.Transducers = append(cp.Transducers, transducer.Transducer{
		ID:          "t0",
		Position:    geometry.Vec3{0, 0, 0},
		Target:      geometry.Vec3{0, 0, 1},
		Radius:      0.005,
		LossFactor:  1,
		OutputPower: 1,
		Wavelength:  0.0086,
	})
	cp.SimulationGeometry = geometry.SimulationGeometry{
		Plane:    geometry.PlaneZ,
		Begin:    geometry.Vec3{-0.01, -0.01, 0.05},
		End:      geometry.Vec3{0.01, 0.01, 0.1},
		Division: &[3]int{21, 21, 6},
	}
	return
}

func WriteStarter(fileName string, force bool) (err error) {
	if !force {
		if _, err = os.Stat(fileName); err == nil {
			return fmt.Errorf("%s exists, use --force to overwrite", fileName)
		}
	}
	return StarterPacket().Save(fileName)
}
