package main

import "ats/internal/app/server"

func main() {
	server.Run()
}
