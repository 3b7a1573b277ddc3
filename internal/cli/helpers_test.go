package cli_test

import (
	"os"
	"path/filepath"
	"testing"
)

// tasksOrg has four tasks: two closed ones, an open one without a date and
// a recurring one with two completions in its logbook.
const tasksOrg = `#+TITLE: Tasks

* DONE Write parser                                             :go:cli:
  CLOSED: [2024-01-01 Mon 10:00]
* DONE Fix tests                                            :go:testing:
  CLOSED: [2024-01-03 Wed 10:00]
* TODO Plan release                                                :cli:
* TODO Water plants                                               :home:
  :LOGBOOK:
  - State "DONE"       from "TODO"       [2024-01-02 Tue 09:00]
  - State "DONE"       from "TODO"       [2024-01-04 Thu 09:00]
  :END:
`

const ticketMd = `---
id: t-1
status: closed
closed: 2024-01-05T12:00:00Z
tags: [go, docs]
---
# Document flags

Explain every flag.
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	err := os.MkdirAll(filepath.Dir(path), 0o750)
	if err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}

	err = os.WriteFile(path, []byte(content), 0o600)
	if err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
