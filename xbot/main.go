package main

import "github.com/redhat-et/xbot-nango/xbot/cmd"

func main() {
	cmd.Execute()
}
