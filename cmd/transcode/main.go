package main

import "github.com/zoobzio/transcode/cmd/transcode/cmd"

func main() {
	cmd.Execute()
}
