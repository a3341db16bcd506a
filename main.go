package main

import "github.com/iksnae/chatlens/cmd"

func main() {
	cmd.Execute()
}
