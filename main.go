package main

import "github.com/KaramelBytes/tweetsift-cli/cmd"

func main() {
	cmd.Execute()
}
