package textls

import "strings"

// Command describes how the host should launch the language server.
// Args and Env are always empty: the server takes no arguments and
// inherits the host's environment.
type Command struct {
	Path string
	Args []string
	Env  []string
}

// String renders the command line.
func (c Command) String() string {
	return strings.TrimSpace(c.Path + " " + strings.Join(c.Args, " "))
}
