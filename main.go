package main

import (
	"log"

	"github.com/yashrajz/EventHorizon-sub001/cmd"
)

func main() {
	if err := cmd.Start(); err != nil {
		log.Fatal(err)
	}
}
