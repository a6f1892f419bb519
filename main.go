package main

import "github.com/hmans/todoql/cmd"

func main() {
	cmd.Execute()
}
