package commands

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
)

// ErrTaskIDRequired indicates no task id was provided.
var ErrTaskIDRequired = errors.New("task id required")

// ParseTaskIDs parses one or more task ids from args.
//
// Every argument must be a positive decimal integer. Duplicates are
// collapsed, keeping the first occurrence.
func ParseTaskIDs(args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, ErrTaskIDRequired
	}

	ids := make([]int, 0, len(args))
	seen := make(map[int]bool, len(args))
	for _, arg := range args {
		if !isAllDigits(arg) {
			return nil, fmt.Errorf("invalid task id: %s", arg)
		}
		id, err := strconv.Atoi(arg)
		if err != nil || id < 1 {
			return nil, fmt.Errorf("invalid task id: %s", arg)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
