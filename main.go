package main

import "github.com/aeroforge/gobem/cmd"

func main() {
	cmd.Execute()
}
