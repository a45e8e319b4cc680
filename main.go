package main

import "transmap/cmd"

func main() {
	cmd.Execute()
}
