package main

import "gearhr/internal/app/server"

func main() {
	server.Run()
}
