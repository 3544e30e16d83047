package main

import "github.com/oshokin/elevator-ids/cmd/elevator-lab-server/cmd"

func main() {
	cmd.Execute()
}
