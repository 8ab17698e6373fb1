package main

import "github.com/dhivya90m/LogiSight-Analytics/cmd"

func main() {
	cmd.Execute()
}
