package main

import (
	"fmt"
	"log"
	"os"

	"treenav/internal/commands"
)

func main() {
	// Set up logging
	logFile, err := os.OpenFile("treenav.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	if err := commands.New().Execute(); err != nil {
		log.Printf("Error during command execution: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logFile.Close()
		os.Exit(1)
	}
}
