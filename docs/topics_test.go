package docs

import (
	"bufio"
	"os"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestTopics(t *testing.T) {
	// This test ensures that the documentation is in sync with itself:
	// 1. Every topic listed in the index can be loaded.
	// 2. Every embedded topic is listed in the index.

	file, err := os.Open(Index + ".md")
	if err != nil {
		t.Fatalf("failed to open the index: %v", err)
	}
	defer file.Close()

	var listed []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)

	for scanner.Scan() {
		matches := topicRegex.FindStringSubmatch(scanner.Text())
		if len(matches) > 1 {
			listed = append(listed, strings.TrimSpace(matches[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning the index: %v", err)
	}

	for _, topic := range listed {
		t.Run("load_"+topic, func(t *testing.T) {
			if _, err := Topic(topic); err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	all, err := Topics()
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range all {
		if !slices.Contains(listed, topic) {
			t.Errorf("topic %q is not listed in %s.md", topic, Index)
		}
	}
}

func TestTopicNotFound(t *testing.T) {
	_, err := Topic("no-such-topic")
	if err == nil {
		t.Fatal("Topic() expected error for an unknown topic")
	}
	// the error guides the user to the valid names
	if !strings.Contains(err.Error(), "strategies") {
		t.Errorf("error %q does not list the available topics", err)
	}
}

func TestTopicStar(t *testing.T) {
	content, err := Topic("*")
	if err != nil {
		t.Fatalf("Topic(*) error = %v", err)
	}
	for _, want := range []string{"# Strategy Files", "# Metrics", "# Price Data"} {
		if !strings.Contains(content, want) {
			t.Errorf("Topic(*) is missing %q", want)
		}
	}
}

func TestConcatExpandsStar(t *testing.T) {
	all, err := Concat("*")
	if err != nil {
		t.Fatalf("Concat(*) error = %v", err)
	}
	one, err := Concat(Index)
	if err != nil {
		t.Fatalf("Concat(readme) error = %v", err)
	}
	if !strings.Contains(all, "# Metrics") || strings.Contains(one, "# Metrics") {
		t.Error("Concat() star expansion does not match the topic list")
	}
}

// TestTopicStructure parses every topic and checks it opens with a level-1
// heading, so the terminal rendering always has a title.
func TestTopicStructure(t *testing.T) {
	all, err := Topics()
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range all {
		t.Run(topic, func(t *testing.T) {
			content, err := Topic(topic)
			if err != nil {
				t.Fatal(err)
			}
			source := []byte(content)
			root := goldmark.DefaultParser().Parse(text.NewReader(source))

			first := root.FirstChild()
			h, ok := first.(*ast.Heading)
			if !ok {
				t.Fatalf("topic %q does not start with a heading", topic)
			}
			if h.Level != 1 {
				t.Errorf("topic %q starts with a level %d heading, want 1", topic, h.Level)
			}
		})
	}
}
