package main

import (
	"github.com/fsdevblog/smartlink/internal/app"
	"github.com/fsdevblog/smartlink/internal/bmeta"
	"github.com/fsdevblog/smartlink/internal/config"
)

func main() {
	bmeta.Print()

	appConf := config.MustLoadConfig()

	a := app.Must(app.New(*appConf))

	a.Logger.Infof("Starting server on %s", appConf.ServerAddress)
	if err := a.Run(); err != nil {
		panic(err)
	}
}
