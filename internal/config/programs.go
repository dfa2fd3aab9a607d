package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
)

// Programs is the normalized button registry: button id to the ordered
// command tokens (executable plus arguments). Entries are immutable once
// loaded; hot reload swaps the whole map.
type Programs map[string][]string

// Buttons returns the mapped button ids in sorted order.
func (p Programs) Buttons() []string {
	ids := make([]string, 0, len(p))
	for id := range p {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// structuredEntry is the object form of a program entry.
type structuredEntry struct {
	Command string          `json:"command"`
	Args    json.RawMessage `json:"args"`
}

// LoadPrograms reads the button-to-program mapping from a JSON file. Each
// entry is either a single command string, an ordered list of tokens, or an
// object with a required command and optional args. Malformed entries and
// an empty registry are load errors that name the offending button key;
// these are fatal at startup and never reach the run loop.
func LoadPrograms(path string) (Programs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading program config: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing program config %s: %w", path, err)
	}

	programs := make(Programs, len(raw))
	for key, entry := range raw {
		tokens, err := normalizeEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid entry for button %q: %w", key, err)
		}
		programs[key] = tokens
	}

	if len(programs) == 0 {
		return nil, fmt.Errorf("program config %s does not define any programs", path)
	}

	return programs, nil
}

// normalizeEntry resolves the three accepted entry shapes into one ordered
// token sequence, so nothing downstream ever branches on entry shape.
func normalizeEntry(raw json.RawMessage) ([]string, error) {
	// Single command string
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return nil, fmt.Errorf("empty command")
		}
		return []string{s}, nil
	}

	// Ordered token list
	var list []any
	if err := json.Unmarshal(raw, &list); err == nil {
		tokens, err := stringify(list)
		if err != nil {
			return nil, err
		}
		if len(tokens) == 0 {
			return nil, fmt.Errorf("empty command list")
		}
		return tokens, nil
	}

	// Structured form: {command, args}
	var entry structuredEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("unsupported program entry %s", string(raw))
	}
	if entry.Command == "" {
		return nil, fmt.Errorf("missing 'command' key in program entry")
	}

	tokens := []string{entry.Command}
	if len(entry.Args) > 0 {
		var args []any
		if err := json.Unmarshal(entry.Args, &args); err == nil {
			extra, err := stringify(args)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, extra...)
		} else {
			// A single scalar arg is accepted too
			var arg any
			if err := json.Unmarshal(entry.Args, &arg); err != nil {
				return nil, fmt.Errorf("invalid 'args' in program entry: %w", err)
			}
			token, err := stringifyScalar(arg)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token)
		}
	}

	return tokens, nil
}

// stringify converts decoded JSON values to command tokens.
func stringify(values []any) ([]string, error) {
	tokens := make([]string, 0, len(values))
	for _, v := range values {
		token, err := stringifyScalar(v)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}

func stringifyScalar(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(val), nil
	default:
		return "", fmt.Errorf("unsupported token %v", v)
	}
}
