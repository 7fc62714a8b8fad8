package main

import "github.com/KaramelBytes/runstats/cmd"

func main() {
	cmd.Execute()
}
