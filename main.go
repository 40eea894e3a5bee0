package main

import "roa-marketplace-backend/cmd"

func main() {
	cmd.Run()
}
