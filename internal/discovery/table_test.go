// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"slices"
	"testing"
)

func TestNewCommandTable_LowestRankWins(t *testing.T) {
	t.Parallel()

	table := NewCommandTable([]Candidate{
		{ShortName: "jobs", Path: "/b/toolforge-jobs", Rank: 1},
		{ShortName: "jobs", Path: "/a/toolforge-jobs", Rank: 0},
		{ShortName: "webservice", Path: "/b/toolforge-webservice", Rank: 1},
	})

	if got, _ := table.Lookup("jobs"); got != "/a/toolforge-jobs" {
		t.Errorf("Lookup(jobs) = %q, want rank-0 path", got)
	}
	if got, _ := table.Lookup("webservice"); got != "/b/toolforge-webservice" {
		t.Errorf("Lookup(webservice) = %q, want /b/toolforge-webservice", got)
	}
	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}
}

func TestNewCommandTable_EqualRankKeepsFirst(t *testing.T) {
	t.Parallel()

	table := NewCommandTable([]Candidate{
		{ShortName: "jobs", Path: "/a/toolforge-jobs.cmd", Rank: 0},
		{ShortName: "jobs", Path: "/a/toolforge-jobs.exe", Rank: 0},
	})

	c, ok := table.Candidate("jobs")
	if !ok {
		t.Fatal("Candidate(jobs) not found")
	}
	if c.Path != "/a/toolforge-jobs.cmd" || c.Rank != 0 {
		t.Errorf("Candidate(jobs) = %+v, want first rank-0 entry", c)
	}
}

func TestCommandTable_NamesSorted(t *testing.T) {
	t.Parallel()

	table := NewCommandTable([]Candidate{
		{ShortName: "webservice", Path: "/a/toolforge-webservice"},
		{ShortName: "build", Path: "/a/toolforge-build"},
		{ShortName: "jobs", Path: "/a/toolforge-jobs"},
	})

	want := []string{"build", "jobs", "webservice"}
	if got := table.Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestCommandTable_MapIsCopy(t *testing.T) {
	t.Parallel()

	table := NewCommandTable([]Candidate{{ShortName: "jobs", Path: "/a/toolforge-jobs"}})
	m := table.Map()
	m["jobs"] = "/tampered"
	m["extra"] = "/x"

	if got, _ := table.Lookup("jobs"); got != "/a/toolforge-jobs" {
		t.Errorf("table mutated through Map(): Lookup(jobs) = %q", got)
	}
	if _, ok := table.Lookup("extra"); ok {
		t.Error("table mutated through Map(): extra entry visible")
	}
}

func TestCommandTable_NilAndEmpty(t *testing.T) {
	t.Parallel()

	var nilTable *CommandTable
	if _, ok := nilTable.Lookup("jobs"); ok {
		t.Error("nil table Lookup() reported a match")
	}
	if nilTable.Len() != 0 || len(nilTable.Names()) != 0 || len(nilTable.Map()) != 0 {
		t.Error("nil table should behave as empty")
	}

	empty := NewCommandTable(nil)
	if empty.Len() != 0 {
		t.Errorf("NewCommandTable(nil).Len() = %d, want 0", empty.Len())
	}
}
