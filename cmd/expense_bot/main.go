package main

import (
	"os"

	"github.com/SscSPs/expense_bot/internal/commands"
)

// @title Expense Bot API
// @version 1.0
// @description Read and clear the shared ledger and personal expenses of a chat user.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
