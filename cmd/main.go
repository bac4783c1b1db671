package main

import (
	"fmt"
	"os"

	"github.com/davincidevllc/continue-leads/internal/app"
	"github.com/davincidevllc/continue-leads/internal/utils"
)

func main() {
	application, err := app.New()
	if err != nil {
		fmt.Printf("failed to initialize app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	application.Start()

	port := utils.GetEnv("PORT", "8080", application.Log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := application.Run(":" + port); err != nil {
		application.Log.Warn("Server failed", "error", err)
	}
}
