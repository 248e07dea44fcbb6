package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/rtree/pkg/report"
	"github.com/matzehuels/rtree/pkg/rtree"
)

func sampleTree(t *testing.T) *rtree.Tree[string, *rtree.BasicNode[string]] {
	t.Helper()
	tr := rtree.NewBasic[string]()
	steps := []error{
		tr.AddRoot(rtree.NewLabeledNode("app", "Application")),
		tr.AddChild("app", rtree.NewNode("api")),
		tr.AddChild("app", rtree.NewNode("db")),
		tr.AddChild("api", rtree.NewNode("cache")),
	}
	for _, err := range steps {
		if err != nil {
			t.Fatal(err)
		}
	}
	return tr
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleTree(t), Options[string]{})

	for _, want := range []string{
		"digraph G {",
		`"app" [label="app"];`,
		`"app" -> "api";`,
		`"app" -> "db";`,
		`"api" -> "cache";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
	if strings.Index(dot, `"app" -> "api"`) > strings.Index(dot, `"api" -> "cache"`) {
		t.Error("edges not in pre-order")
	}
}

func TestToDOT_LabelAndDetailed(t *testing.T) {
	tr := sampleTree(t)
	dot := ToDOT(tr, Options[string]{
		Detailed: true,
		Label: func(id string) string {
			n, _ := tr.Node(id)
			if n != nil && n.Label != "" {
				return n.Label
			}
			return id
		},
	})
	if !strings.Contains(dot, `label="Application\nid: app\nchildren: 2"`) {
		t.Errorf("ToDOT() missing detailed label in:\n%s", dot)
	}
}

func TestToDOT_Unresolved(t *testing.T) {
	tr := sampleTree(t)
	db, _ := tr.Node("db")
	db.AddChildID("replica")

	dot := ToDOT(tr, Options[string]{})
	if !strings.Contains(dot, `"replica" [label="replica", style="rounded,filled,dashed"`) {
		t.Errorf("ToDOT() missing dashed node in:\n%s", dot)
	}
	if !strings.Contains(dot, `"db" -> "replica" [style=dashed];`) {
		t.Errorf("ToDOT() missing dashed edge in:\n%s", dot)
	}
}

func TestToDOT_Select(t *testing.T) {
	dot := ToDOT(sampleTree(t), Options[string]{Select: &report.Selection[string]{ID: "cache", Radius: 2}})

	if strings.Contains(dot, `"db"`) {
		t.Errorf("ToDOT() window should not contain db:\n%s", dot)
	}
	if !strings.Contains(dot, `"app" [label="app", style="rounded,filled,dashed"`) {
		t.Errorf("ToDOT() missing external parent of window root:\n%s", dot)
	}
	if !strings.Contains(dot, `"cache" [label="cache", fillcolor="#fde68a", penwidth=2];`) {
		t.Errorf("ToDOT() missing highlighted target:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox() = %q, want %q", out, want)
	}

	plain := []byte("<svg><g/></svg>")
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("normalizeViewBox() changed svg without viewBox: %q", got)
	}
}
