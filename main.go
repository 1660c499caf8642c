package main

import "docksmith/cmd"

func main() {
	cmd.Execute()
}
