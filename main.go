package main

import (
	"context"
	"time"

	"github.com/biped-mathnews/slugline-web/internal/app"
)

const shutdownTimeout = 10 * time.Second

func main() {
	application := app.New()    // Initialize the application
	wait := application.Start() // Start the application and wait for the termination signal
	<-wait                      // Wait for the application to receive a termination signal

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	application.Stop(ctx) // Stop the application gracefully
}
