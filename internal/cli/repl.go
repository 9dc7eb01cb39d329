package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/rapidblood/internal/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	role() models.Role

	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Profile(ctx context.Context, args []string) error

	Availability(ctx context.Context, args []string) error
	Requests(ctx context.Context, args []string) error
	Respond(ctx context.Context, args []string) error

	Search(ctx context.Context, args []string) error
	Request(ctx context.Context, args []string) error

	Peers(ctx context.Context, args []string) error
	Reach(ctx context.Context, args []string) error
	Chat(ctx context.Context, args []string) error
	Send(ctx context.Context, args []string) error
	Threads(ctx context.Context, args []string) error
	ClearChat(ctx context.Context, args []string) error

	Stats(ctx context.Context, args []string) error
	Seed(ctx context.Context, args []string) error
	Reset(ctx context.Context, args []string) error
}

func helpText(role models.Role) string {
	switch role {
	case models.RoleDonor:
		return "Available commands: profile, available on|off, requests, accept <id>, decline <id>, " +
			"peers [query], reach <email>, chat <email>, send <email> <text>, threads [query], clear <email>, logout, exit"
	case models.RoleRecipient:
		return "Available commands: profile, search <location>, request <donor email> [message], requests, " +
			"peers [query], reach <email>, chat <email>, send <email> <text>, threads [query], clear <email>, logout, exit"
	case models.RoleAdmin:
		return "Available commands: stats, peers [query], seed <file.yaml>, reset, logout, exit"
	default:
		return "Available commands: register [donor|recipient], login [donor|recipient|admin] [email], exit"
	}
}

// runREPL reads commands from reader until EOF or "exit"/"quit".
//
// The first token of a line is the command; the remaining tokens are passed
// to the handler, which prompts for anything missing. Handler errors are
// printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("rapidblood %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpText(a.role()))

		case "register":
			cmdErr = a.Register(ctx, args)
		case "login":
			cmdErr = a.Login(ctx, args)
		case "logout":
			cmdErr = a.Logout(ctx, args)
		case "profile", "me":
			cmdErr = a.Profile(ctx, args)

		case "available", "availability":
			cmdErr = a.Availability(ctx, args)
		case "requests":
			cmdErr = a.Requests(ctx, args)
		case "respond":
			cmdErr = a.Respond(ctx, args)
		case "accept", "decline":
			id := ""
			if len(args) > 0 {
				id = args[0]
			}
			cmdErr = a.Respond(ctx, []string{id, cmd})

		case "search":
			cmdErr = a.Search(ctx, args)
		case "request":
			cmdErr = a.Request(ctx, args)

		case "peers", "users":
			cmdErr = a.Peers(ctx, args)
		case "reach", "call":
			cmdErr = a.Reach(ctx, args)
		case "chat":
			cmdErr = a.Chat(ctx, args)
		case "send":
			cmdErr = a.Send(ctx, args)
		case "threads", "chats":
			cmdErr = a.Threads(ctx, args)
		case "clear":
			cmdErr = a.ClearChat(ctx, args)

		case "stats":
			cmdErr = a.Stats(ctx, args)
		case "seed":
			cmdErr = a.Seed(ctx, args)
		case "reset":
			cmdErr = a.Reset(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", describe(cmdErr))
		}
	}
}
