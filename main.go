package main

import (
	"songvault/cmd"
)

func main() {
	cmd.Execute()
}
