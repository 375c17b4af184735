package main

import "github.com/ridoystarlord/invctl/cmd"

func main() {
	cmd.Execute()
}
