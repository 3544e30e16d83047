package main

import "github.com/oshokin/elevator-ids/cmd/elevator-lab/cmd"

func main() {
	cmd.Execute()
}
