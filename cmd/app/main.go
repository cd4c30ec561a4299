package main

import (
	"github.com/humanbelnik/cinetally/internal/app"
	"github.com/humanbelnik/cinetally/internal/config"
)

func main() {
	app.Go(config.Load())
}
