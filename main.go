package main

import "dns-fleet/cmd"

func main() {
	cmd.Execute()
}
