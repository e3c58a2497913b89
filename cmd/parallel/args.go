package main

import (
	"fmt"
	"os"

	"github.com/gorun/parallel/internal/stage"
)

// marker identifies one of the four input-list markers recognized
// among the trailing positional arguments.
type marker int

const (
	newList marker = iota
	appendList
	newFileList
	appendFileList
)

func classifyMarker(tok string) (marker, bool) {
	switch tok {
	case ":::":
		return newList, true
	case ":::+":
		return appendList, true
	case "::::":
		return newFileList, true
	case "::::+":
		return appendFileList, true
	default:
		return 0, false
	}
}

// parsePositionalArgs splits the trailing positional arguments into
// the command template (everything before the first marker, joined
// with spaces) and zero or more input lists. ":::" opens a new
// literal list, ":::+" appends literal items to the list just opened,
// "::::" opens a new list whose items are the lines of the named
// files, and "::::+" appends file lines to the list just opened.
func parsePositionalArgs(args []string) (template string, lists [][]string, err error) {
	i := 0
	var words []string
	for i < len(args) {
		if _, ok := classifyMarker(args[i]); ok {
			break
		}
		words = append(words, args[i])
		i++
	}
	for _, w := range words {
		if template != "" {
			template += " "
		}
		template += w
	}

	for i < len(args) {
		m, _ := classifyMarker(args[i])
		i++

		var items []string
		for i < len(args) {
			if _, ok := classifyMarker(args[i]); ok {
				break
			}
			items = append(items, args[i])
			i++
		}

		switch m {
		case newList:
			lists = append(lists, items)
		case appendList:
			if len(lists) == 0 {
				return "", nil, fmt.Errorf("parallel: ':::+' has no preceding list to append to")
			}
			lists[len(lists)-1] = append(lists[len(lists)-1], items...)
		case newFileList:
			fileItems, ferr := readListFiles(items)
			if ferr != nil {
				return "", nil, ferr
			}
			lists = append(lists, fileItems)
		case appendFileList:
			if len(lists) == 0 {
				return "", nil, fmt.Errorf("parallel: '::::+' has no preceding list to append to")
			}
			fileItems, ferr := readListFiles(items)
			if ferr != nil {
				return "", nil, ferr
			}
			lists[len(lists)-1] = append(lists[len(lists)-1], fileItems...)
		}
	}

	return template, lists, nil
}

// readListFiles reads every line of each named file, in order, into a
// single flat list of items.
func readListFiles(paths []string) ([]string, error) {
	var items []string
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, fmt.Errorf("parallel: reading input list file %s: %w", p, err)
		}
		err = stage.ReadLines(f, func(line string) error {
			items = append(items, line)
			return nil
		})
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("parallel: reading input list file %s: %w", p, err)
		}
	}
	return items, nil
}
