package main

import "notemark/cmd"

func main() {
	cmd.Execute()
}
