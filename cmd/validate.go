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
)

// ValidateCmd represents the validate command
var ValidateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Check transducer array files without computing anything",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			failed bool
		)
		for _, fileName := range args {
			if err := ValidateFile(fileName); err != nil {
				fmt.Printf("%s: %s\n", fileName, err.Error())
				failed = true
				continue
			}
			fmt.Printf("%s: ok\n", fileName)
		}
		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(ValidateCmd)
}

func ValidateFile(fileName string) (err error) {
	var (
		cp *InputParameters.ConfigPacket
	)
	if cp, err = InputParameters.Load(fileName); err != nil {
		return
	}
	return cp.Validate()
}
