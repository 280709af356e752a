package protocol

import "strings"

// Command is one parsed request line.
type Command struct {
	Name string
	Args []string
}

// Parse tokenizes a request line into a command name and whitespace-separated
// arguments. SEND is special-cased: everything after the recipient is a
// single message argument, with runs of whitespace collapsed to one space.
// Returns false for blank lines.
func Parse(line string) (Command, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, false
	}

	cmd := Command{Name: fields[0], Args: fields[1:]}
	if cmd.Name == "SEND" && len(fields) > 2 {
		cmd.Args = []string{fields[1], strings.Join(fields[2:], " ")}
	}

	return cmd, true
}
