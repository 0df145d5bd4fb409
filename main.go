package main

import "github.com/Tiliavir/astreinte-tracker/cmd"

func main() {
	cmd.Execute()
}
