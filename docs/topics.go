// Package docs embeds the built-in documentation shown by the topic command.
package docs

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed *.md
var pages embed.FS

// Index is the default topic: the annotated list of all the others.
const Index = "readme"

// Topic returns the markdown of a single topic. "*" returns every topic
// concatenated in alphabetical order, for a one-shot full read.
func Topic(name string) (string, error) {
	if name == "*" {
		names, err := Topics()
		if err != nil {
			return "", err
		}
		return concat(names)
	}
	content, err := pages.ReadFile(name + ".md")
	if err != nil {
		names, _ := Topics()
		return "", fmt.Errorf("unknown topic %q, available: %s", name, strings.Join(names, ", "))
	}
	return string(content), nil
}

// Concat returns the given topics joined into one document, expanding "*".
func Concat(names ...string) (string, error) {
	var b strings.Builder
	for _, name := range names {
		content, err := Topic(name)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func concat(names []string) (string, error) {
	var b strings.Builder
	for _, name := range names {
		content, err := pages.ReadFile(name + ".md")
		if err != nil {
			return "", err
		}
		b.Write(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// Topics lists the available topic names, the index excluded.
func Topics() ([]string, error) {
	entries, err := pages.ReadDir(".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".md")
		if name == Index {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
