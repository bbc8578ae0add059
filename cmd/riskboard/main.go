package main

import (
	_ "go.uber.org/automaxprocs"

	"github.com/autopeer-io/riskboard/cmd/riskboard/app"
)

func main() {
	app.NewApp().Run()
}
