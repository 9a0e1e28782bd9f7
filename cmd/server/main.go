package main

import "craftadmin/internal/app/server"

func main() {
	server.Run()
}
