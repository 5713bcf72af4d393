package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"csv", FormatCSV},
		{"toon", FormatTOON},
		{"text", FormatText},
		{"", FormatText},
		{"bogus", FormatText},
	}
	for _, tt := range tests {
		if got := ParseFormat(tt.input); got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func sampleTable() *Table {
	return NewTable(
		"Findings",
		[]string{"Type", "Count"},
		[][]string{
			{"exact", "2"},
			{"fuzzy", "1"},
		},
		nil,
		nil,
	)
}

func TestTableRenderCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleTable().RenderCSV(&buf); err != nil {
		t.Fatalf("RenderCSV: %v", err)
	}

	want := "Type,Count\nexact,2\nfuzzy,1\n"
	if buf.String() != want {
		t.Errorf("csv = %q, want %q", buf.String(), want)
	}
}

func TestTableRenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleTable().RenderMarkdown(&buf); err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"## Findings", "| Type | Count |", "| --- | --- |", "| exact | 2 |"} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestTableRenderText(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleTable().RenderText(&buf, false); err != nil {
		t.Fatalf("RenderText: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Findings") || !strings.Contains(out, "exact") {
		t.Errorf("text output missing content:\n%s", out)
	}
}

func TestTableRenderDataFromRows(t *testing.T) {
	data := sampleTable().RenderData()
	rows, ok := data.([]map[string]string)
	if !ok {
		t.Fatalf("RenderData type = %T", data)
	}
	if len(rows) != 2 || rows[0]["Type"] != "exact" || rows[1]["Count"] != "1" {
		t.Errorf("rows = %+v", rows)
	}

	// Explicit data takes precedence over row reconstruction.
	wrapped := NewTable("", nil, nil, nil, map[string]int{"n": 1})
	if _, ok := wrapped.RenderData().(map[string]int); !ok {
		t.Errorf("wrapped data type = %T", wrapped.RenderData())
	}
}

func TestSectionRenderMarkdownNesting(t *testing.T) {
	s := &Section{
		Title:   "Top",
		Content: "top content",
		Sections: []Section{
			{Title: "Nested", Content: "nested content"},
		},
	}

	var buf bytes.Buffer
	if err := s.RenderMarkdown(&buf); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "## Top") || !strings.Contains(out, "### Nested") {
		t.Errorf("nesting levels wrong:\n%s", out)
	}
}

func TestReportRenderText(t *testing.T) {
	r := &Report{
		Title: "Duplicate Code Report",
		Sections: []Renderable{
			sampleTable(),
			&Section{Title: "Details", Content: "two groups"},
		},
	}

	var buf bytes.Buffer
	if err := r.RenderText(&buf, false); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"Duplicate Code Report", "Findings", "Details", "two groups"} {
		if !strings.Contains(out, want) {
			t.Errorf("text report missing %q:\n%s", want, out)
		}
	}
}

func TestFormatterOutputJSON(t *testing.T) {
	f := &Formatter{format: FormatJSON, writer: &bytes.Buffer{}}
	buf := &bytes.Buffer{}
	f.writer = buf

	if err := f.Output(map[string]int{"total": 3}); err != nil {
		t.Fatalf("Output: %v", err)
	}
	if !strings.Contains(buf.String(), `"total": 3`) {
		t.Errorf("json = %q", buf.String())
	}
}

func TestFormatterCSVFallsBackForNonTables(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &Formatter{format: FormatCSV, writer: buf}

	if err := f.Output(&Section{Title: "x", Content: "y"}); err != nil {
		t.Fatalf("Output: %v", err)
	}
	if !strings.Contains(buf.String(), `"title"`) {
		t.Errorf("expected JSON fallback, got %q", buf.String())
	}
}

func TestFormatterMessagesUncolored(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &Formatter{format: FormatText, writer: buf, colored: false}

	f.Success("done")
	f.Warning("careful")
	f.Error("broken")

	out := buf.String()
	if !strings.Contains(out, "done") ||
		!strings.Contains(out, "WARNING: careful") ||
		!strings.Contains(out, "ERROR: broken") {
		t.Errorf("messages = %q", out)
	}
}
