package main

import "cinebook/cmd"

func main() {
	cmd.Execute()
}
