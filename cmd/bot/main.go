package main

import "go.minekube.com/bot/pkg/cmd/bot"

func main() {
	bot.Main()
}
