package org

import (
	"slices"
	"strings"

	"github.com/calvinalkan/taskstat/internal/task"
)

type parser struct {
	doc   *Document
	lines []string
	pos   int
	stack []ancestor
}

type ancestor struct {
	level int
	tags  []string
}

func (p *parser) run() error {
	for p.pos < len(p.lines) {
		m := headingRe.FindStringSubmatch(p.lines[p.pos])
		if m == nil {
			p.pos++

			continue
		}

		if err := p.section(len(m[1]), m[2]); err != nil {
			return err
		}
	}

	return nil
}

// section parses the heading at p.pos and everything up to the next heading.
func (p *parser) section(level int, text string) error {
	t := &task.Task{File: p.doc.File, Line: p.pos + 1}
	own := p.parseHeading(t, text)

	for len(p.stack) > 0 && p.stack[len(p.stack)-1].level >= level {
		p.stack = p.stack[:len(p.stack)-1]
	}

	t.Tags = p.inheritedTags(own)
	p.stack = append(p.stack, ancestor{level: level, tags: own})

	start := p.pos + 1

	end := start
	for end < len(p.lines) && !headingRe.MatchString(p.lines[end]) {
		end++
	}

	var body []string

	for i := start; i < end; i++ {
		line := p.lines[i]

		if i == start && planningRe.MatchString(line) && isPlanningLine(line) {
			if err := p.planning(t, line, i); err != nil {
				return err
			}

			continue
		}

		if m := drawerRe.FindStringSubmatch(line); m != nil {
			if closing := drawerEnd(p.lines, i+1, end); closing >= 0 {
				if err := p.drawer(t, m[1], i+1, closing); err != nil {
					return err
				}

				i = closing

				continue
			}
		}

		if m := stateLineRe.FindStringSubmatch(line); m != nil {
			if err := p.repeat(t, m, i); err != nil {
				return err
			}

			continue
		}

		body = append(body, line)
	}

	t.Body = strings.TrimSpace(strings.Join(body, "\n"))
	p.doc.Tasks = append(p.doc.Tasks, t)
	p.pos = end

	return nil
}

// parseHeading fills state and heading text and returns the heading's own tags.
func (p *parser) parseHeading(t *task.Task, text string) []string {
	var tags []string

	if loc := tagsRe.FindStringSubmatchIndex(text); loc != nil {
		for tag := range strings.SplitSeq(text[loc[2]:loc[3]], ":") {
			if tag != "" && !slices.Contains(tags, tag) {
				tags = append(tags, tag)
			}
		}

		text = text[:loc[0]]
	}

	if word, rest, _ := strings.Cut(text, " "); p.doc.States.Known(word) {
		t.State = word
		text = rest
	}

	text = strings.TrimSpace(text)
	text = priorityRe.ReplaceAllString(text, "")
	t.Heading = strings.TrimSpace(text)

	return tags
}

func (p *parser) inheritedTags(own []string) []string {
	tags := slices.Clone(p.doc.FileTags)

	add := func(list []string) {
		for _, tag := range list {
			if !slices.Contains(tags, tag) {
				tags = append(tags, tag)
			}
		}
	}

	for _, a := range p.stack {
		add(a.tags)
	}

	add(own)

	return tags
}

// isPlanningLine reports whether line holds nothing but planning entries.
func isPlanningLine(line string) bool {
	return strings.TrimSpace(planningRe.ReplaceAllString(line, "")) == ""
}

func (p *parser) planning(t *task.Task, line string, idx int) error {
	for _, m := range planningRe.FindAllStringSubmatch(line, -1) {
		ts, err := ParseTimestamp(m[2])
		if err != nil {
			return p.errorAt(idx, err)
		}

		switch m[1] {
		case "CLOSED":
			t.Closed = ts
		case "SCHEDULED":
			t.Scheduled = ts
		case "DEADLINE":
			t.Deadline = ts
		}
	}

	return nil
}

// drawerEnd returns the index of the :END: line closing a drawer opened
// before from, or -1 if the drawer is not closed within the section.
func drawerEnd(lines []string, from, end int) int {
	for i := from; i < end; i++ {
		if drawerEndRe.MatchString(lines[i]) {
			return i
		}
	}

	return -1
}

func (p *parser) drawer(t *task.Task, name string, from, to int) error {
	for i := from; i < to; i++ {
		line := p.lines[i]

		if strings.EqualFold(name, "PROPERTIES") {
			if m := propertyRe.FindStringSubmatch(line); m != nil {
				if t.Properties == nil {
					t.Properties = map[string]string{}
				}

				t.Properties[m[1]] = m[2]
			}

			continue
		}

		if m := stateLineRe.FindStringSubmatch(line); m != nil {
			if err := p.repeat(t, m, i); err != nil {
				return err
			}
		}
	}

	return nil
}

func (p *parser) repeat(t *task.Task, m []string, idx int) error {
	ts, err := ParseTimestamp(m[3])
	if err != nil {
		return p.errorAt(idx, err)
	}

	t.Repeats = append(t.Repeats, task.Repeat{State: m[1], From: m[2], Time: ts})

	return nil
}

func (p *parser) errorAt(idx int, err error) error {
	return &ParseError{File: p.doc.File, Line: idx + 1, Err: err}
}
