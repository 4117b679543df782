package main

import "github.com/epylar/mal/cmd"

func main() {
	cmd.Execute()
}
