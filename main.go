package main

import "github.com/notargets/gotrap/cmd"

func main() {
	cmd.Execute()
}
