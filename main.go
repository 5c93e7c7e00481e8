package main

import "github.com/KostasZigo/gogit-odb/cmd"

func main() {
	cmd.Execute()
}
