package main

import "github.com/oshokin/spigot-launcher/cmd/spigot-launcher/cmd"

func main() {
	cmd.Execute()
}
