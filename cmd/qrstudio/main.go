package main

import "github.com/RashadAnsari/go-qrstudio/cmd/qrstudio/cmd"

func main() {
	cmd.Execute()
}
