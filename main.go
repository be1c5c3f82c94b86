package main

import "github.com/SpynitterMina/DayWiseV2/cmd"

func main() {
	cmd.Execute()
}
