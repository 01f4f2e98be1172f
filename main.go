package main

import "github.com/nikogura/reviewrank/cmd"

func main() {
	cmd.Execute()
}
