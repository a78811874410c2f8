package command

// ParsedLine is one line of REPL input after modifier extraction and
// tokenization.
type ParsedLine struct {
	Text  string      // original input text
	Name  string      // uppercased command name, empty if none
	Args  []string    // command arguments, empty if none
	Codec string      // codec name from a "#:name" suffix, empty if none
	Pipe  string      // shell command after " | ", empty if none
	Doc   *CommandDoc // documentation, nil if not found
}

// CommandDoc describes one command for help, hints and completion.
type CommandDoc struct {
	Command   string `json:"command"`
	Summary   string `json:"summary"`
	Arguments string `json:"arguments"`
	Since     string `json:"since"`
	Group     string `json:"group"`
}
