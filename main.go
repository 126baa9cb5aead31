package main

import "repostats/cmd"

func main() {
	cmd.Execute()
}
