package main

import "github.com/bmatsuo/conslisp/cmd"

func main() {
	cmd.Execute()
}
