package main

import "github.com/willrr/ha-toyota-willrr/cmd"

func main() {
	cmd.Execute()
}
