package main

import "github.com/KaramelBytes/wxstats-cli/cmd"

func main() {
	cmd.Execute()
}
