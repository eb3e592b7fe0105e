package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	ListCategories(ctx context.Context) error
	AddCategory(ctx context.Context) error
	EditCategory(ctx context.Context, args []string) error
	DeleteCategory(ctx context.Context, args []string) error

	ListTransactions(ctx context.Context) error
	AddTransaction(ctx context.Context) error
	EditTransaction(ctx context.Context, args []string) error
	DeleteTransaction(ctx context.Context, args []string) error

	Status(ctx context.Context) error
	Retry(ctx context.Context, args []string) error
	Sync(ctx context.Context) error
	Pull(ctx context.Context) error
	Backup(ctx context.Context) error
}

const (
	helpCommon   = "cats, addcat, editcat <id>, delcat <id>, txs, addtx, edittx <id>, deltx <id>, status, retry [kind id], backup, exit"
	helpSignedIn = "Available commands: " + helpCommon + ", sync, pull, logout"
	helpOffline  = "Available commands: register, login, " + helpCommon
)

// runREPL starts a simple read–eval–print loop for the finkeeper CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a' with the remaining tokens as
// arguments. Data commands work whether or not a session exists; changes
// made while signed out stay pending until the next login.
//
// Handler errors are printed and the loop continues. The loop exits on
// scanner EOF or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("fk> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpOffline)
			}

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)

		case "cats", "categories":
			err = a.ListCategories(ctx)
		case "addcat", "addcategory":
			err = a.AddCategory(ctx)
		case "editcat", "editcategory":
			err = a.EditCategory(ctx, args)
		case "delcat", "delcategory":
			err = a.DeleteCategory(ctx, args)

		case "txs", "transactions":
			err = a.ListTransactions(ctx)
		case "addtx":
			err = a.AddTransaction(ctx)
		case "edittx":
			err = a.EditTransaction(ctx, args)
		case "deltx":
			err = a.DeleteTransaction(ctx, args)

		case "status":
			err = a.Status(ctx)
		case "retry":
			err = a.Retry(ctx, args)
		case "sync":
			err = a.Sync(ctx)
		case "pull":
			err = a.Pull(ctx)
		case "backup":
			err = a.Backup(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
