package main

import "wirepath/cmd/wirepath/cmd"

func main() {
	cmd.Execute()
}
