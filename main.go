package main

import (
	"glossa/cmd"
)

func main() {
	cmd.Execute()
}
