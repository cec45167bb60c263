// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"strings"
	"testing"
)

func mockRender(t *testing.T) *string {
	t.Helper()
	var style string
	original := render
	render = func(in, stylePath string) (string, error) {
		style = stylePath
		return in, nil
	}
	t.Cleanup(func() { render = original })
	return &style
}

func TestId_Constants(t *testing.T) {
	ids := []Id{CommandNotFoundId, ExecFailedId, ConfigLoadFailedId, InvalidPrefixId}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	if CommandNotFoundId != 1 {
		t.Errorf("CommandNotFoundId = %d, want 1", CommandNotFoundId)
	}
}

func TestGet(t *testing.T) {
	for _, id := range []Id{CommandNotFoundId, ExecFailedId, ConfigLoadFailedId, InvalidPrefixId} {
		issue := Get(id)
		if issue == nil {
			t.Fatalf("Get(%d) returned nil", id)
		}
		if issue.Id() != id {
			t.Errorf("Get(%d).Id() = %d", id, issue.Id())
		}
	}

	if Get(Id(0)) != nil || Get(Id(9999)) != nil {
		t.Error("Get() of an unknown ID should return nil")
	}
}

func TestValues_SortedById(t *testing.T) {
	values := Values()
	if len(values) != len(issues) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), len(issues))
	}
	for i := 1; i < len(values); i++ {
		if values[i-1].Id() >= values[i].Id() {
			t.Errorf("Values() not sorted: %d before %d", values[i-1].Id(), values[i].Id())
		}
	}
}

func TestIssue_LinksAreCloned(t *testing.T) {
	issue := Get(CommandNotFoundId)
	links := issue.DocLinks()
	if len(links) == 0 {
		t.Fatal("CommandNotFound should link to documentation")
	}
	links[0] = "modified"
	if issue.DocLinks()[0] == "modified" {
		t.Error("DocLinks() should return a clone")
	}
}

func TestIssue_Render(t *testing.T) {
	style := mockRender(t)

	rendered, err := Get(CommandNotFoundId).Render("dark")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if *style != "dark" {
		t.Errorf("Render() passed style %q, want %q", *style, "dark")
	}
	for _, want := range []string{"toolforge-<name>", "## See also", "- <" + string(helpLink) + ">"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("Render() output should contain %q", want)
		}
	}
}

func TestIssue_Render_NoLinks(t *testing.T) {
	mockRender(t)

	testIssue := &Issue{id: Id(9998), mdMsg: "# Test Issue\n\nNo links here."}
	rendered, err := testIssue.Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if strings.Contains(rendered, "See also") {
		t.Error("Render() without links should not contain 'See also'")
	}
}

func TestAllIssuesAreRenderable(t *testing.T) {
	for _, issue := range Values() {
		if strings.TrimSpace(string(issue.MarkdownMsg())) == "" {
			t.Errorf("issue %d has no content", issue.Id())
		}
		out, err := issue.Render("notty")
		if err != nil {
			t.Errorf("issue %d failed to render: %v", issue.Id(), err)
		}
		if strings.TrimSpace(out) == "" {
			t.Errorf("issue %d rendered to nothing", issue.Id())
		}
	}
}
