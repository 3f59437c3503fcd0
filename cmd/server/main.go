package main

import (
	log "github.com/sirupsen/logrus"

	"vaultory_backend/internal/app"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	a := app.NewApp()
	if err := a.Run(); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
