package main

import (
	"log"

	"github.com/bernaba123/E-Commerce-sub001/internal/app"
	"github.com/bernaba123/E-Commerce-sub001/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := app.New(cfg).Run(); err != nil {
		log.Fatal(err)
	}
}
