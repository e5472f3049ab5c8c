package main

import "qrlog/cmd"

func main() {
	cmd.Execute()
}
