package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	glide "github.com/valkey-io/valkey-glide-sub004"
	"github.com/valkey-io/valkey-glide-sub004/internal/codec"
	"github.com/valkey-io/valkey-glide-sub004/internal/command"
	"github.com/valkey-io/valkey-glide-sub004/internal/output"
	"github.com/valkey-io/valkey-glide-sub004/internal/transport"
)

// blockingCommands wait server-side and must not run under the default
// request timeout.
var blockingCommands = map[string]bool{
	"BLPOP": true, "BRPOP": true, "BLMPOP": true, "BZMPOP": true,
	"XREAD": true, "XREADGROUP": true, "BZPOPMIN": true, "BZPOPMAX": true,
}

// handleCommand dispatches one parsed line. It returns the client to
// use for the next line, which differs from c only after CONNECT.
func handleCommand(ctx context.Context, rl *readline.Instance, c *glide.Client, reg *command.Registry, parsed *command.ParsedLine) *glide.Client {
	switch parsed.Name {
	case "EXIT":
		os.Exit(0)
	case "CLEAR":
		fmt.Print("\033[2J\033[H")
	case "HELP":
		handleHelp(reg, parsed)
	case "CONNECT":
		return handleConnect(ctx, rl, c, parsed)
	case "SAFEKEYS":
		handleSafeKeys(ctx, c, parsed)
	default:
		handleStandardCommand(ctx, c, reg, parsed)
	}
	return c
}

func handleHelp(reg *command.Registry, parsed *command.ParsedLine) {
	if len(parsed.Args) == 0 {
		color.Yellow("Usage: HELP <command>")
		return
	}
	cmdName := strings.ToUpper(strings.Join(parsed.Args, " "))
	doc := reg.Get(cmdName)
	if doc == nil {
		color.Red("Unknown command: %s", cmdName)
		return
	}
	color.Cyan("%s %s", doc.Command, doc.Arguments)
	fmt.Println(doc.Summary)
	if doc.Since != "" {
		color.Blue("Since: %s", doc.Since)
	}
}

func handleConnect(ctx context.Context, rl *readline.Instance, c *glide.Client, parsed *command.ParsedLine) *glide.Client {
	if len(parsed.Args) < 2 {
		color.Red("Usage: CONNECT <host> <port> [user] [pass]")
		return c
	}

	newHost := parsed.Args[0]
	newPort := parsed.Args[1]
	newUser := ""
	newPass := ""

	if len(parsed.Args) == 3 {
		newPass = parsed.Args[2]
	} else if len(parsed.Args) >= 4 {
		newUser = parsed.Args[2]
		newPass = parsed.Args[3]
	}

	newClient, err := connect(ctx, newHost, newPort, newUser, newPass)
	if err != nil {
		color.Red("Connection failed: %v", err)
		return c
	}

	c.Close()
	host = newHost
	port = newPort
	username = newUser
	password = newPass

	rl.SetPrompt(fmt.Sprintf("%s:%s> ", host, port))
	printConnectionInfo(ctx, newClient)
	return newClient
}

// handleSafeKeys iterates the keyspace with SCAN instead of KEYS,
// prompting every page before continuing.
func handleSafeKeys(ctx context.Context, c *glide.Client, parsed *command.ParsedLine) {
	pattern := "*"
	if len(parsed.Args) > 0 {
		pattern = parsed.Args[0]
	}

	cursor := "0"
	shown := 0
	opts := output.PrintOpts{Color: true, Newline: true}

	for {
		page, err := c.Scan(ctx, cursor, pattern, 100)
		if err != nil {
			color.Red("Scan error: %v", err)
			return
		}

		for _, key := range page.Elements {
			shown++
			fmt.Printf("%d) ", shown)
			output.PrintValue(os.Stdout, key, opts)
		}

		cursor = page.Cursor
		if cursor == "0" {
			return
		}

		fmt.Print("Continue Listing? ")
		color.New(color.FgHiYellow).Print("(Y/N) ")
		if !readConfirmation() {
			return
		}
	}
}

func handleStandardCommand(ctx context.Context, c *glide.Client, reg *command.Registry, parsed *command.ParsedLine) {
	if reg.IsDangerous(parsed.Name) {
		color.Yellow("The command %s is considered dangerous to execute, execute anyway? (Y/N)", parsed.Name)
		if parsed.Name == "KEYS" {
			color.Cyan("Hint: You can execute SAFEKEYS or SCAN instead.")
		}
		if !readConfirmation() {
			color.Yellow("Aborted.")
			return
		}
	}

	runCtx := ctx
	if !blockingCommands[parsed.Name] {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}

	val, err := execute(runCtx, c, parsed)
	if err != nil {
		var serverErr *transport.ServerError
		if errors.As(err, &serverErr) {
			color.Red("(error) %s", serverErr.Message)
		} else {
			color.Red("Error: %v", err)
		}
		return
	}

	opts := output.PrintOpts{Color: true, Newline: true}
	if parsed.Codec != "" {
		cd, err := codec.Get(parsed.Codec)
		if err != nil {
			color.Red("Codec error: %v", err)
			return
		}
		opts.Decode = cd.Decode
	}

	if parsed.Pipe != "" {
		if err := output.PipeValue(os.Stdout, val, parsed.Pipe); err != nil {
			color.Red("Pipe error: %v", err)
		}
		return
	}

	output.PrintValue(os.Stdout, val, opts)
}

// execute runs a parsed line against the server. Lines carrying a codec
// modifier go through the binary path so payloads survive untouched for
// decoding; everything else uses validated text.
func execute(ctx context.Context, c *glide.Client, parsed *command.ParsedLine) (any, error) {
	if parsed.Codec == "" {
		return c.Do(ctx, parsed.Name, parsed.Args...)
	}

	cd, err := codec.Get(parsed.Codec)
	if err != nil {
		return nil, err
	}

	args := make([][]byte, len(parsed.Args))
	for i, arg := range parsed.Args {
		args[i] = []byte(arg)
	}

	// SET with a codec stores the encoded value.
	if parsed.Name == "SET" && len(args) >= 2 {
		encoded, err := cd.Encode(args[1])
		if err != nil {
			return nil, fmt.Errorf("codec encode: %w", err)
		}
		args[1] = encoded
	}

	return c.DoBytes(ctx, parsed.Name, args...)
}

// readConfirmation reads a line from stdin unbuffered so it never
// steals input from readline, and reports whether it starts with Y.
func readConfirmation() bool {
	var line []byte
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			line = append(line, buf[0])
			if buf[0] == '\n' {
				break
			}
		}
		if err != nil {
			break
		}
	}

	ans := strings.TrimSpace(string(line))
	return len(ans) > 0 && (ans[0] == 'Y' || ans[0] == 'y')
}
