package main

import "github.com/fieldlens/fieldlens/cmd"

func main() {
	cmd.Execute()
}
