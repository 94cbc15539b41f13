// @title           TCG Card Studio API
// @version         1.0.0
// @description     Backend API for generating trading card art with AI, scanning and grading physical cards, animating cards into short videos, and keeping a per-user card collection.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

//go:generate swag init -g cmd/server/main.go -d ../../ -o ../../docs

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
