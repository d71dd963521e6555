package main

import (
	"log"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal"
)

func main() {
	if err := internal.RunImport(); err != nil {
		log.Fatalf("Import failed: %v", err)
	}
}
