package main

import "github.com/uicontracts/uic/cmd"

func main() {
	cmd.Execute()
}
