package main

import "github.com/mizutanik/kokoro_backend/cmd"

func main() {
	cmd.Execute()
}
