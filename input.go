package bizscan

import (
	"bufio"
	"io"
	"net/url"
	"os"
	"strings"
)

// InputKind distinguishes direct detail page URLs from search queries.
type InputKind int

// Input kinds.
const (
	InputQuery InputKind = iota
	InputURL
)

// String returns the kind's name for logging.
func (k InputKind) String() string {
	if k == InputURL {
		return "url"
	}
	return "query"
}

// Input is a single line of the input file.
type Input struct {
	Kind  InputKind
	Value string
}

// ParseInput classifies a trimmed input line.
func ParseInput(line string) Input {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://") {
		return Input{Kind: InputURL, Value: line}
	}
	return Input{Kind: InputQuery, Value: line}
}

// ParseInputs reads one input per line. Blank lines and lines starting
// with '#' are skipped.
func ParseInputs(r io.Reader) ([]Input, error) {
	var inputs []Input
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		inputs = append(inputs, ParseInput(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return inputs, nil
}

// LoadInputs reads inputs from the file at path.
// Returns ENOTFOUND if the file does not exist.
func LoadInputs(path string) ([]Input, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, Errorf(ENOTFOUND, "input file not found: %s", path)
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseInputs(f)
}

// SearchURL builds the search results URL for query, optionally biased
// towards location.
func SearchURL(baseURL, searchPath, query, location string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", Errorf(EINVALID, "invalid base URL: %v", err)
	}
	ref, err := url.Parse(searchPath)
	if err != nil {
		return "", Errorf(EINVALID, "invalid search path: %v", err)
	}

	u := base.ResolveReference(ref)
	params := url.Values{}
	params.Set("find_desc", query)
	if location != "" {
		params.Set("find_loc", location)
	}
	u.RawQuery = params.Encode()
	return u.String(), nil
}
