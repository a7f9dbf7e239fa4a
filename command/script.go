package command

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/cssed/cssdoc"
)

// ParseScript reads a list of intents, one per line. Empty lines and lines
// starting with '#' are ignored. Lines have one of the forms
//
//	type <text>          insert text (the remainder of the line)
//	pick <index>         pick a suggestion
//	select <path>:<off>  place the cursor, e.g. "select 0,1,0,0:3"
//	<key chord>          e.g. "Ctrl+Shift+Enter", looked up in km
func ParseScript(r io.Reader, km KeyMap) ([]Intent, error) {
	var intents []Intent
	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		in, err := parseLine(line, km)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		intents = append(intents, in)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return intents, nil
}

func parseLine(line string, km KeyMap) (Intent, error) {
	verb, arg, _ := strings.Cut(strings.TrimLeft(line, " \t"), " ")
	switch verb {
	case "type":
		return Type(arg), nil
	case "pick":
		i, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return Intent{}, err
		}
		return Intent{Kind: Pick, Index: i}, nil
	case "select":
		pt, err := parsePoint(strings.TrimSpace(arg))
		if err != nil {
			return Intent{}, err
		}
		return Place(pt.Path, pt.Offset), nil
	}
	return km.Translate(strings.TrimSpace(line))
}

func parsePoint(s string) (cssdoc.Point, error) {
	path, off, hasOff := strings.Cut(s, ":")
	var pt cssdoc.Point
	for _, x := range strings.Split(path, ",") {
		i, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return pt, fmt.Errorf("invalid path %q", s)
		}
		pt.Path = append(pt.Path, i)
	}
	if hasOff {
		i, err := strconv.Atoi(off)
		if err != nil {
			return pt, fmt.Errorf("invalid offset %q", s)
		}
		pt.Offset = i
	}
	return pt, nil
}
