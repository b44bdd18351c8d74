package main

import "github.com/lynxkv/lynx-go/cmd"

func main() {
	cmd.Execute()
}
