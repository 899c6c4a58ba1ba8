package editor

import "strings"

// Command is what a keyboard chord resolves to.
type Command string

const (
	CommandNone      Command = ""
	CommandUndo      Command = "undo"
	CommandRedo      Command = "redo"
	CommandDelete    Command = "delete"
	CommandDuplicate Command = "duplicate"
)

// ResolveChord maps a chord such as "ctrl+shift+z" to an editor command.
// Chords are suppressed entirely while text editing is active, otherwise
// undo/redo would fight with native text-input undo.
func ResolveChord(chord string, editing bool) Command {
	if editing {
		return CommandNone
	}

	parts := strings.Split(strings.ToLower(strings.TrimSpace(chord)), "+")
	if len(parts) == 0 {
		return CommandNone
	}

	key := parts[len(parts)-1]
	primary, shift := false, false
	for _, mod := range parts[:len(parts)-1] {
		switch mod {
		case "ctrl", "meta", "cmd":
			primary = true
		case "shift":
			shift = true
		default:
			return CommandNone
		}
	}

	switch key {
	case "z":
		if !primary {
			return CommandNone
		}
		if shift {
			return CommandRedo
		}
		return CommandUndo
	case "y":
		if primary && !shift {
			return CommandRedo
		}
	case "d":
		if primary && !shift {
			return CommandDuplicate
		}
	case "delete", "backspace":
		if !primary && !shift {
			return CommandDelete
		}
	}

	return CommandNone
}
