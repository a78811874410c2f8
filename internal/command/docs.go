package command

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed commands.json
var commandsJSON []byte

// Registry holds the documentation for the commands the REPL knows
// about, for help text, hints, tab completion and the dangerous-command
// confirmation.
type Registry struct {
	docs      []CommandDoc
	index     map[string]int // command name to index in docs
	dangerous map[string]bool
}

// NewRegistry loads the embedded command table and returns a registry.
func NewRegistry() (*Registry, error) {
	var docs []CommandDoc
	if err := json.Unmarshal(commandsJSON, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse embedded commands JSON: %w", err)
	}

	appCommands := []CommandDoc{
		{Command: "EXIT", Summary: "Exit the application", Group: "application"},
		{Command: "CONNECT", Summary: "Connect to a server", Arguments: "[host] [port] [user] [pass]", Group: "application"},
		{Command: "HELP", Summary: "Show help for a command", Arguments: "[command]", Group: "application"},
		{Command: "CLEAR", Summary: "Clear the screen", Group: "application"},
		{Command: "SAFEKEYS", Summary: "Safely iterate over keys using SCAN", Arguments: "[pattern]", Group: "application"},
	}
	docs = append(docs, appCommands...)

	dangerousList := []string{
		"FLUSHDB", "FLUSHALL", "KEYS", "DEL", "CONFIG",
		"SHUTDOWN", "BGREWRITEAOF", "BGSAVE", "SAVE", "SREM",
		"RENAME", "DEBUG",
	}
	dangerousMap := make(map[string]bool, len(dangerousList))
	for _, cmd := range dangerousList {
		dangerousMap[cmd] = true
	}

	idx := make(map[string]int, len(docs))
	for i, doc := range docs {
		idx[doc.Command] = i
	}

	return &Registry{
		docs:      docs,
		index:     idx,
		dangerous: dangerousMap,
	}, nil
}

// Get returns the documentation for a command, or nil if not found.
// Compound names like "XINFO STREAM" are looked up as given.
func (r *Registry) Get(cmd string) *CommandDoc {
	cmd = strings.ToUpper(cmd)
	if i, ok := r.index[cmd]; ok {
		return &r.docs[i]
	}
	return nil
}

// GetCommands returns the command names starting with the given prefix.
// Used for tab completion.
func (r *Registry) GetCommands(prefix string) []string {
	prefix = strings.ToUpper(prefix)
	var matches []string
	for _, doc := range r.docs {
		if strings.HasPrefix(doc.Command, prefix) {
			matches = append(matches, doc.Command)
		}
	}
	return matches
}

// Search returns the docs whose names start with the given prefix.
func (r *Registry) Search(prefix string) []CommandDoc {
	prefix = strings.ToUpper(prefix)
	var matches []CommandDoc
	for _, doc := range r.docs {
		if strings.HasPrefix(doc.Command, prefix) {
			matches = append(matches, doc)
		}
	}
	return matches
}

// IsDangerous reports whether the command requires confirmation before
// it is sent.
func (r *Registry) IsDangerous(cmd string) bool {
	return r.dangerous[strings.ToUpper(cmd)]
}
