// Package output renders normalized reply values for the terminal.
//
// The values it accepts are the dynamic shapes produced by
// normalization: nil, string, int64, float64, []byte, []any and
// [][2]any for maps in server order.
package output

import (
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Decoder reverses a value codec before display. Nil means show the
// payload as stored.
type Decoder func([]byte) ([]byte, error)

// PrintOpts configures how a value is printed.
type PrintOpts struct {
	Color   bool
	Decode  Decoder
	Padding string
	Newline bool
}

var (
	colorString  = color.New(color.FgHiBlue)
	colorInteger = color.New(color.FgHiGreen)
	colorNull    = color.New(color.FgHiBlack)
	colorArray   = color.New(color.FgHiYellow)
	colorIndex   = color.New(color.FgHiBlack)
)

// digitWidth returns the number of digits in n.
func digitWidth(n int) int {
	if n <= 0 {
		return 1
	}
	w := 0
	for n > 0 {
		w++
		n /= 10
	}
	return w
}

// printIndex writes an index string (e.g. " 1) "), optionally colored.
func printIndex(w io.Writer, idx string, useColor bool) {
	if useColor {
		colorIndex.Fprint(w, idx)
	} else {
		fmt.Fprint(w, idx)
	}
}

// PrintValue prints a normalized value to the given writer with
// optional ANSI colors.
func PrintValue(w io.Writer, v any, opts PrintOpts) {
	switch val := v.(type) {
	case []any:
		printArray(w, val, opts)
	case [][2]any:
		printMap(w, val, opts)
	default:
		printScalar(w, v, opts)
	}
}

func printArray(w io.Writer, items []any, opts PrintOpts) {
	if len(items) == 0 {
		printColored(w, colorNull, "(empty array)", opts.Color)
		if opts.Newline {
			fmt.Fprintln(w)
		}
		return
	}

	digits := digitWidth(len(items))
	idxWidth := digits + 2 // e.g. " 1) " for digits=1

	for i, item := range items {
		idxStr := fmt.Sprintf("%*d) ", digits, i+1)

		if i > 0 {
			fmt.Fprint(w, opts.Padding)
		}
		printIndex(w, idxStr, opts.Color)

		childOpts := opts
		childOpts.Padding = opts.Padding + strings.Repeat(" ", idxWidth)
		childOpts.Newline = false
		PrintValue(w, item, childOpts)

		// Non-empty child containers already end with a newline from
		// their last element.
		if !endsOwnLine(item) {
			fmt.Fprintln(w)
		}
	}
}

func printMap(w io.Writer, pairs [][2]any, opts PrintOpts) {
	if len(pairs) == 0 {
		printColored(w, colorNull, "(empty map)", opts.Color)
		if opts.Newline {
			fmt.Fprintln(w)
		}
		return
	}

	childOpts := opts
	childOpts.Padding = opts.Padding + "  "
	childOpts.Newline = false

	for i, pair := range pairs {
		if i > 0 {
			fmt.Fprint(w, opts.Padding)
		}
		printColored(w, colorArray, "# ", opts.Color)
		PrintValue(w, pair[0], childOpts)
		fmt.Fprint(w, " => ")
		PrintValue(w, pair[1], childOpts)
		if !endsOwnLine(pair[1]) {
			fmt.Fprintln(w)
		}
	}
}

// endsOwnLine reports whether printing v already emitted a trailing
// newline, which is the case for non-empty containers.
func endsOwnLine(v any) bool {
	switch val := v.(type) {
	case []any:
		return len(val) > 0
	case [][2]any:
		return len(val) > 0
	}
	return false
}

func printScalar(w io.Writer, v any, opts PrintOpts) {
	var text string
	var c *color.Color

	switch val := v.(type) {
	case nil:
		text = "(nil)"
		c = colorNull
	case string:
		text = strconv.Quote(val)
		c = colorString
	case []byte:
		payload := val
		if opts.Decode != nil {
			if decoded, err := opts.Decode(payload); err == nil {
				payload = decoded
			}
		}
		text = strconv.Quote(string(payload))
		c = colorString
	case int64:
		text = fmt.Sprintf("(integer) %d", val)
		c = colorInteger
	case float64:
		text = fmt.Sprintf("(double) %s", strconv.FormatFloat(val, 'g', -1, 64))
		c = colorInteger
	default:
		text = fmt.Sprint(val)
		c = colorString
	}

	printColored(w, c, text, opts.Color)
	if opts.Newline {
		fmt.Fprintln(w)
	}
}

func printColored(w io.Writer, c *color.Color, text string, useColor bool) {
	if useColor {
		c.Fprint(w, text)
	} else {
		fmt.Fprint(w, text)
	}
}

// PipeValue feeds the raw form of a value into a shell command and
// writes the command's output to w.
func PipeValue(w io.Writer, v any, shellCmd string) error {
	if shellCmd == "" {
		return nil
	}

	args := strings.Fields(shellCmd)
	if len(args) == 0 {
		return nil
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = w
	cmd.Stderr = w

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return err
	}

	writeRawValue(stdin, v)
	stdin.Close()

	return cmd.Wait()
}

// writeRawValue writes values without quoting or decoration, one leaf
// per line, for piping into external tools.
func writeRawValue(w io.Writer, v any) {
	switch val := v.(type) {
	case nil:
	case []any:
		for _, item := range val {
			writeRawValue(w, item)
		}
	case [][2]any:
		for _, pair := range val {
			writeRawValue(w, pair[0])
			writeRawValue(w, pair[1])
		}
	case []byte:
		fmt.Fprintf(w, "%s\n", val)
	default:
		fmt.Fprintln(w, val)
	}
}
