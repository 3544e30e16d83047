package main

import "github.com/oshokin/elevator-ids/cmd/elevator-lab-client/cmd"

func main() {
	cmd.Execute()
}
