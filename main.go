package main

import "github.com/lunebank/openfin-go/cmd"

func main() {
	cmd.Execute()
}
