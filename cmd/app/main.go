package main

import (
	"log"

	"github.com/drivecanvas/designer-backend/config"
	"github.com/drivecanvas/designer-backend/internal/appServer"
)

func main() {

	cfgFile, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("LoadConfig: %v", err)
	}

	cfg, err := config.ParseConfig(cfgFile)
	if err != nil {
		log.Fatalf("ParseConfig: %v", err)
	}

	appServer.NewServer(cfg)
}
