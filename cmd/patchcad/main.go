package main

import "github.com/rflabs/patchcad/cmd/patchcad/cmd"

func main() {
	cmd.Execute()
}
