package main

import "github.com/ByLCY/pagecast/cmd"

func main() {
	cmd.Execute()
}
