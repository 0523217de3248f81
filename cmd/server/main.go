package main

import (
	"fmt"
	"os"

	"github.com/luminalearn/lumina-backend/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Printf("failed to initialize app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	fmt.Printf("Server listening on :%s\n", a.Cfg.Port)
	if err := a.Run(":" + a.Cfg.Port); err != nil {
		fmt.Printf("server exited: %v\n", err)
		os.Exit(1)
	}
}
