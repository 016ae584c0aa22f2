package main

import "github.com/galra/adbackup/cmd/adbackup/cmd"

func main() {
	cmd.Execute()
}
