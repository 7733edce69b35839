package main

import (
	"log"

	"github.com/opsdesk/ticketera/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
