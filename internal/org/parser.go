// Package org parses org-mode outlines into tasks.
//
// Every heading becomes a task. Supported syntax: todo keywords (configured
// and per-file #+TODO lines), priorities, tags with inheritance and
// #+FILETAGS, the planning line, drawers, and logbook state records
// which become the task's repeats.
package org

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/calvinalkan/taskstat/internal/task"
)

// Options configures Parse.
type Options struct {
	// States are the keywords recognised in headings in addition to any
	// declared by the file itself.
	States task.States
}

// Document is a parsed org file.
type Document struct {
	File  string
	Tasks []*task.Task
	// States is the vocabulary in effect: configured plus file-declared keywords.
	States   task.States
	FileTags []string
}

var (
	headingRe   = regexp.MustCompile(`^(\*+)\s+(.*?)\s*$`)
	priorityRe  = regexp.MustCompile(`^\[#[A-Za-z0-9]\]\s*`)
	tagsRe      = regexp.MustCompile(`(?:^|\s+)(:(?:[\p{L}\p{N}_@#%]+:)+)$`)
	planningRe  = regexp.MustCompile(`(CLOSED|SCHEDULED|DEADLINE):\s*([<\[][^>\]]*[>\]])`)
	drawerRe    = regexp.MustCompile(`^\s*:([\w-]+):\s*$`)
	drawerEndRe = regexp.MustCompile(`(?i)^\s*:END:\s*$`)
	propertyRe  = regexp.MustCompile(`^\s*:([^:\s]+):(?:\s+(.*?))?\s*$`)
	stateLineRe = regexp.MustCompile(`^\s*-\s+State\s+"([^"]*)"\s+(?:from(?:\s+"([^"]*)")?\s*)?(\[[^\]]*\])`)
	keywordRe   = regexp.MustCompile(`^#\+(\w+):\s*(.*?)\s*$`)
)

// ParseFile reads and parses the org file at path.
func ParseFile(path string, opts Options) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Parse(f, path, opts)
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// Parse parses an org document. file is only used for error messages and Task.File.
func Parse(r io.Reader, file string, opts Options) (*Document, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}

	doc := &Document{File: file, States: opts.States}
	doc.States, doc.FileTags = scanKeywords(lines, doc.States)

	p := parser{doc: doc, lines: lines}
	if err := p.run(); err != nil {
		return nil, err
	}

	return doc, nil
}

func readLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}

	return lines, sc.Err()
}

// scanKeywords collects #+TODO style keyword declarations and #+FILETAGS.
func scanKeywords(lines []string, states task.States) (task.States, []string) {
	var fileTags []string

	for _, line := range lines {
		m := keywordRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		switch strings.ToUpper(m[1]) {
		case "TODO", "SEQ_TODO", "TYP_TODO":
			states = states.Merge(parseTodoDeclaration(m[2]))
		case "FILETAGS":
			for tag := range strings.SplitSeq(m[2], ":") {
				if tag = strings.TrimSpace(tag); tag != "" && !slices.Contains(fileTags, tag) {
					fileTags = append(fileTags, tag)
				}
			}
		}
	}

	return states, fileTags
}

// parseTodoDeclaration parses "TODO NEXT | DONE CANCELLED". Without a bar the
// last keyword is the done state. Fast-access keys like "WAIT(w@)" are dropped.
func parseTodoDeclaration(decl string) task.States {
	todo, done, hasBar := strings.Cut(decl, "|")

	todoKeys := declKeys(todo)
	doneKeys := declKeys(done)

	if !hasBar && len(todoKeys) > 1 {
		doneKeys = todoKeys[len(todoKeys)-1:]
		todoKeys = todoKeys[:len(todoKeys)-1]
	}

	return task.States{Todo: todoKeys, Done: doneKeys}
}

func declKeys(s string) []string {
	var keys []string

	for _, f := range strings.Fields(s) {
		if i := strings.IndexByte(f, '('); i > 0 {
			f = f[:i]
		}

		if task.ValidateKey(f) == nil {
			keys = append(keys, f)
		}
	}

	return keys
}
