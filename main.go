package main

import "github.com/gitlanes/gitlanes/cmd"

func main() {
	cmd.Execute()
}
