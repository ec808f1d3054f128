package cli

import (
	"errors"
	"fmt"
	"strings"
)

type Command string

const (
	CommandServeCheck Command = "serve-check"
	CommandDoctor     Command = "doctor"
	CommandReport     Command = "report"
	CommandRestart    Command = "restart"
	CommandVersion    Command = "version"
	CommandHelp       Command = "help"
)

var validCommands = map[Command]struct{}{
	CommandServeCheck: {},
	CommandDoctor:     {},
	CommandReport:     {},
	CommandRestart:    {},
	CommandVersion:    {},
	CommandHelp:       {},
}

// needsSession marks commands that take a session ID argument.
var needsSession = map[Command]struct{}{
	CommandReport:  {},
	CommandRestart: {},
}

type Parsed struct {
	Command     Command
	SessionID   string
	CatalogPath string
	ShowHelp    bool
}

func Parse(args []string) (Parsed, error) {
	parsed := Parsed{Command: CommandHelp, ShowHelp: true}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-h", "--help":
			parsed.ShowHelp = true
			parsed.Command = CommandHelp
		case "--version":
			parsed.ShowHelp = false
			parsed.Command = CommandVersion
		case "--catalog":
			i++
			if i >= len(args) {
				return Parsed{}, errors.New("--catalog requires a path")
			}
			parsed.CatalogPath = args[i]
		default:
			if strings.HasPrefix(arg, "-") {
				return Parsed{}, fmt.Errorf("unknown flag: %s", arg)
			}

			cmd := Command(arg)
			if _, ok := validCommands[cmd]; !ok {
				return Parsed{}, fmt.Errorf("unknown command: %s", arg)
			}

			parsed.Command = cmd
			parsed.ShowHelp = cmd == CommandHelp

			rest := args[i+1:]
			if _, ok := needsSession[cmd]; ok {
				if len(rest) != 1 {
					return Parsed{}, fmt.Errorf("command %q requires exactly one session ID", arg)
				}
				parsed.SessionID = rest[0]
				return parsed, nil
			}
			if len(rest) != 0 {
				return Parsed{}, fmt.Errorf("unexpected arguments after command %q", arg)
			}
		}
	}

	return parsed, nil
}

func HelpText(binaryName string) string {
	return fmt.Sprintf(`Usage:
  %[1]s [--catalog PATH] <command> [session-id]

Commands:
  serve-check         Validate configuration and print warnings
  doctor              Run configuration and environment checks
  report SESSION_ID   Build and deliver the report for a session
  restart SESSION_ID  Clear all recorded answers for a session
  version             Print version information
  help                Show this help

Flags:
  --catalog PATH   Question catalog file (default: builtin catalog)
  -h, --help       Show help
  --version        Show version
`, binaryName)
}
