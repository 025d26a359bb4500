package main

import "jobboard_front/internal/app"

func main() {
	app.Run()
}
