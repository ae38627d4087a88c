package main

import "planr_backend/internal/app"

func main() {
	app.Run()
}
