package main

import "github.com/oknkahraman/appustabul/cmd"

func main() {
	cmd.Execute()
}
