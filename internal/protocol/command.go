package protocol

// Argument is a single command argument: either text or raw bytes.
// The distinction matters only at the call site; on the wire both are
// length-prefixed bulk strings and are binary safe either way.
type Argument interface {
	ArgBytes() []byte
}

// TextArg is a textual command argument.
type TextArg string

func (a TextArg) ArgBytes() []byte { return []byte(a) }

// BytesArg is a raw binary command argument.
type BytesArg []byte

func (a BytesArg) ArgBytes() []byte { return a }

// Command is a fully assembled server command, ready for a transport.
type Command struct {
	Name string
	Args []Argument
}

// NewCommand builds a Command from a name and textual arguments.
func NewCommand(name string, args ...string) Command {
	cmd := Command{Name: name}
	for _, a := range args {
		cmd.Args = append(cmd.Args, TextArg(a))
	}
	return cmd
}

// NewBinaryCommand builds a Command whose trailing arguments are raw bytes.
func NewBinaryCommand(name string, args ...[]byte) Command {
	cmd := Command{Name: name}
	for _, a := range args {
		cmd.Args = append(cmd.Args, BytesArg(a))
	}
	return cmd
}
