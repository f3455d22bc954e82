package main

import (
	"ProjectScoreService/internal/bootstrap"
)

func main() {
	service := bootstrap.InitApplication()
	if err := service.Run(); err != nil {
		panic(err)
	}
}
