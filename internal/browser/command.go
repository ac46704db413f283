package browser

import (
	"regexp"
	"strconv"
	"strings"
)

// CommandKind enumerates everything a line of input can mean.
type CommandKind int

const (
	// CmdEmpty is a blank line.
	CmdEmpty CommandKind = iota
	// CmdQuit is "q", "/exit" or "/quit".
	CmdQuit
	// CmdBack is "u".
	CmdBack
	// CmdLang is "lang", "lang <code>" or "/lang [code]". Arg holds the code,
	// empty when the user has to be asked.
	CmdLang
	// CmdHelp is "help" or "/help".
	CmdHelp
	// CmdClear is "/clear".
	CmdClear
	// CmdHistory is "/history".
	CmdHistory
	// CmdSave is "/save [path]". Arg holds the path as typed.
	CmdSave
	// CmdFollow is a string of ASCII digits. Index holds its value, or -1
	// when it does not fit in an int.
	CmdFollow
	// CmdNavigate is an absolute http or https URL. Arg holds it as typed.
	CmdNavigate
	// CmdUnknownSlash is any other input starting with "/".
	CmdUnknownSlash
	// CmdUnknown is anything else.
	CmdUnknown
)

// String returns the name of the kind.
func (k CommandKind) String() string {
	switch k {
	case CmdEmpty:
		return "empty"
	case CmdQuit:
		return "quit"
	case CmdBack:
		return "back"
	case CmdLang:
		return "lang"
	case CmdHelp:
		return "help"
	case CmdClear:
		return "clear"
	case CmdHistory:
		return "history"
	case CmdSave:
		return "save"
	case CmdFollow:
		return "follow"
	case CmdNavigate:
		return "navigate"
	case CmdUnknownSlash:
		return "unknown-slash"
	case CmdUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Command is one parsed line of input.
type Command struct {
	Kind CommandKind

	// Arg is the language code, save path or URL, depending on Kind.
	Arg string

	// Index is the 1-based link number for CmdFollow.
	Index int

	// Raw is the trimmed input line.
	Raw string
}

// absoluteURLPattern matches input that should be navigated to directly.
var absoluteURLPattern = regexp.MustCompile(`(?i)^https?://`)

// ParseCommand interprets one line of input. Commands are case-insensitive;
// URLs and save paths keep their case.
func ParseCommand(line string) Command {
	raw := strings.TrimSpace(line)
	lower := strings.ToLower(raw)
	cmd := Command{Raw: raw}

	switch {
	case raw == "":
		cmd.Kind = CmdEmpty
	case strings.HasPrefix(lower, "/"):
		parseSlash(&cmd, raw, lower)
	case lower == "q":
		cmd.Kind = CmdQuit
	case lower == "u":
		cmd.Kind = CmdBack
	case lower == "help":
		cmd.Kind = CmdHelp
	case strings.Fields(lower)[0] == "lang":
		cmd.Kind = CmdLang
		cmd.Arg = secondField(lower)
	case isDigits(raw):
		cmd.Kind = CmdFollow
		cmd.Index = -1
		if n, err := strconv.Atoi(raw); err == nil {
			cmd.Index = n
		}
	case absoluteURLPattern.MatchString(raw):
		cmd.Kind = CmdNavigate
		cmd.Arg = raw
	default:
		cmd.Kind = CmdUnknown
	}
	return cmd
}

// parseSlash handles input starting with "/". Only /lang and /save take
// an argument; any other slash command followed by text is unknown.
func parseSlash(cmd *Command, raw, lower string) {
	fields := strings.Fields(lower)
	name := fields[0]
	hasArgs := len(fields) > 1

	switch name {
	case "/lang":
		cmd.Kind = CmdLang
		cmd.Arg = secondField(lower)
		return
	case "/save":
		cmd.Kind = CmdSave
		cmd.Arg = strings.TrimSpace(raw[len(name):])
		return
	}

	if hasArgs {
		cmd.Kind = CmdUnknownSlash
		return
	}
	switch name {
	case "/help":
		cmd.Kind = CmdHelp
	case "/clear":
		cmd.Kind = CmdClear
	case "/history":
		cmd.Kind = CmdHistory
	case "/exit", "/quit":
		cmd.Kind = CmdQuit
	default:
		cmd.Kind = CmdUnknownSlash
	}
}

// secondField returns the first argument after the command word.
func secondField(s string) string {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
