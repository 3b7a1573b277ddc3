package ticket

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/calvinalkan/taskstat/internal/task"
)

// Options configures Parse.
type Options struct {
	// States maps ticket statuses onto the configured vocabulary:
	// closed becomes the first done keyword, open the first todo keyword.
	States task.States
}

// frontmatter is the YAML header of a ticket. Unknown keys are ignored.
type frontmatter struct {
	ID         string            `yaml:"id"`
	Title      string            `yaml:"title"`
	Status     string            `yaml:"status"`
	Type       scalar            `yaml:"type"`
	Priority   scalar            `yaml:"priority"`
	Assignee   scalar            `yaml:"assignee"`
	Parent     scalar            `yaml:"parent"`
	Tags       []string          `yaml:"tags"`
	Created    stamp             `yaml:"created"`
	Closed     stamp             `yaml:"closed"`
	Scheduled  stamp             `yaml:"scheduled"`
	Deadline   stamp             `yaml:"deadline"`
	Properties map[string]scalar `yaml:"properties"`
	Repeats    []repeatEntry     `yaml:"repeats"`
}

type repeatEntry struct {
	State string `yaml:"state"`
	From  string `yaml:"from"`
	Date  stamp  `yaml:"date"`
}

// scalar accepts any YAML scalar as its literal text.
type scalar string

func (s *scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", node.Line)
	}

	*s = scalar(node.Value)

	return nil
}

// stamp is a timestamp given as RFC 3339, "YYYY-MM-DD hh:mm[:ss]" or "YYYY-MM-DD".
type stamp struct {
	time.Time
}

var stampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func (s *stamp) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: %w", node.Line, ErrInvalidTimestamp)
	}

	if node.Value == "" || node.Tag == "!!null" {
		return nil
	}

	t, err := ParseTimestamp(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	s.Time = t

	return nil
}

// ParseTimestamp parses a frontmatter timestamp.
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range stampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
}

// ParseFile reads and parses the ticket at path.
func ParseFile(path string, opts Options) (*task.Task, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ticket: %w", err)
	}

	return Parse(content, path, opts)
}

// Parse parses a markdown ticket with YAML frontmatter into a task.
func Parse(content []byte, file string, opts Options) (*task.Task, error) {
	header, body, err := splitFrontmatter(content)
	if err != nil {
		return nil, err
	}

	var fm frontmatter
	if err := yaml.Unmarshal(header, &fm); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFrontmatter, err)
	}

	title, text := plainText(body)
	if fm.Title != "" {
		title = fm.Title
	}

	if strings.TrimSpace(title) == "" {
		return nil, ErrNoTitle
	}

	t := &task.Task{
		File:      file,
		Line:      1,
		Heading:   strings.TrimSpace(title),
		Body:      text,
		Tags:      fm.Tags,
		State:     mapStatus(fm.Status, opts.States),
		Closed:    fm.Closed.Time,
		Scheduled: fm.Scheduled.Time,
		Deadline:  fm.Deadline.Time,
	}

	props := map[string]string{}

	for key, val := range map[string]scalar{
		"id": scalar(fm.ID), "type": fm.Type, "priority": fm.Priority,
		"assignee": fm.Assignee, "parent": fm.Parent,
	} {
		if val != "" {
			props[key] = string(val)
		}
	}

	if !fm.Created.IsZero() {
		props["created"] = fm.Created.Format(time.RFC3339)
	}

	for key, val := range fm.Properties {
		props[key] = string(val)
	}

	if len(props) > 0 {
		t.Properties = props
	}

	for _, r := range fm.Repeats {
		t.Repeats = append(t.Repeats, task.Repeat{
			State: mapStatus(r.State, opts.States),
			From:  mapStatus(r.From, opts.States),
			Time:  r.Date.Time,
		})
	}

	return t, nil
}

// mapStatus translates ticket statuses; org-style keywords pass through upper-cased.
func mapStatus(status string, states task.States) string {
	switch status {
	case "":
		return ""
	case StatusClosed:
		if len(states.Done) > 0 {
			return states.Done[0]
		}
	case StatusOpen:
		if len(states.Todo) > 0 {
			return states.Todo[0]
		}
	}

	return strings.ToUpper(status)
}

// splitFrontmatter returns the YAML between the leading --- lines and the remaining body.
func splitFrontmatter(content []byte) ([]byte, []byte, error) {
	lines := bytes.SplitAfter(content, []byte("\n"))
	if len(lines) == 0 || strings.TrimRight(string(lines[0]), "\r\n") != frontmatterDelimiter {
		return nil, nil, ErrNoFrontmatter
	}

	offset := len(lines[0])

	for i := 1; i < len(lines) && i <= MaxFrontmatterLines; i++ {
		if strings.TrimRight(string(lines[i]), "\r\n") == frontmatterDelimiter {
			return content[len(lines[0]):offset], content[offset+len(lines[i]):], nil
		}

		offset += len(lines[i])
	}

	return nil, nil, ErrFrontmatterTooLong
}
