package analyzer

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/dupehound/dupehound/pkg/detect"
	"github.com/dupehound/dupehound/pkg/lang"
)

// splitLines splits content the way the scanner does: a trailing newline
// closes the last line instead of opening an empty one.
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

func TestGenericTokensStripComments(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			"line comment",
			"x = 1 // set x\ny = 2\n",
			[]string{"x", "=", "1", "y", "=", "2"},
		},
		{
			"block comment",
			"a /* ignore\nme */ b",
			[]string{"a", "b"},
		},
		{
			"hash comment",
			"# header\nvalue = 3\n",
			[]string{"value", "=", "3"},
		},
		{
			"punctuation splits",
			"f(x, y);",
			[]string{"f", "(", "x", ",", "y", ")", ";"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := genericTokens(tt.content)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tokens = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJavascriptTokenizeCanonicalizesArrows(t *testing.T) {
	p := javascriptPipeline{}

	arrow := p.Tokenize("const f = (x) => x + 1;\n")
	classic := p.Tokenize("const f = function (x) { return x + 1; };\n")
	if !contains(arrow, "function") {
		t.Errorf("arrow form should tokenize with 'function': %v", arrow)
	}
	if !contains(classic, "function") {
		t.Errorf("classic form should keep 'function': %v", classic)
	}

	// Template literal bodies collapse to an empty string literal.
	a := p.Tokenize("const s = `hello ${name}`;\n")
	b := p.Tokenize("const s = `goodbye ${other}`;\n")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("template literal bodies should not affect tokens:\n%v\n%v", a, b)
	}
}

func TestJavaTokenizeStripsAnnotations(t *testing.T) {
	p := javaPipeline{}
	plain := p.Tokenize("void run() {}\n")
	annotated := p.Tokenize("@Override\n@SuppressWarnings(\"all\")\nvoid run() {}\n")
	if !reflect.DeepEqual(plain, annotated) {
		t.Errorf("annotations should not affect tokens:\n%v\n%v", plain, annotated)
	}
}

func TestCppTokenizeStripsDirectives(t *testing.T) {
	p := cppPipeline{}
	got := p.Tokenize("#include <stdio.h>\nint main() { return 0; }\n")
	if contains(got, "include") || contains(got, "stdio") {
		t.Errorf("preprocessor directives should be stripped: %v", got)
	}
	if !contains(got, "main") {
		t.Errorf("code after directives must survive: %v", got)
	}
}

func TestGenericBlocks(t *testing.T) {
	content := "class Widget\n  def draw\n    render\n  end\nend\n"
	lines := splitLines(content)

	blocks := genericBlocks(lines)
	if len(blocks) != 2 {
		t.Fatalf("blocks = %d, want 2: %+v", len(blocks), blocks)
	}
	if blocks[0].Kind != "class" || blocks[0].Name != "Widget" || blocks[0].StartLine != 1 {
		t.Errorf("class block = %+v", blocks[0])
	}
	if blocks[1].Kind != "function" || blocks[1].Name != "draw" || blocks[1].StartLine != 2 {
		t.Errorf("def block = %+v", blocks[1])
	}
	for _, b := range blocks {
		if b.EndLine > len(lines) {
			t.Errorf("block end %d beyond file end %d", b.EndLine, len(lines))
		}
		if b.Body == "" {
			t.Errorf("block %s has empty body", b.Name)
		}
	}
}

func TestJavascriptExtractBlocks(t *testing.T) {
	content := "function add(a, b) {\n  return a + b;\n}\n\nclass Counter {\n  tick() {}\n}\n"
	lines := splitLines(content)

	blocks := javascriptPipeline{}.ExtractBlocks(content, lines)

	var names []string
	for _, b := range blocks {
		names = append(names, b.Kind+":"+b.Name)
	}
	if !contains(names, "function:add") || !contains(names, "class:Counter") {
		t.Errorf("blocks = %v", names)
	}
	for _, b := range blocks {
		if b.Name == "add" && b.StartLine != 1 {
			t.Errorf("add starts at %d, want 1", b.StartLine)
		}
		if b.Name == "Counter" && b.StartLine != 5 {
			t.Errorf("Counter starts at %d, want 5", b.StartLine)
		}
	}
}

func TestJavaExtractBlocks(t *testing.T) {
	content := "public class Account {\n  private int balance;\n\n  public int getBalance() {\n    return balance;\n  }\n}\n"
	lines := splitLines(content)

	blocks := javaPipeline{}.ExtractBlocks(content, lines)

	var methods, classes int
	for _, b := range blocks {
		switch b.Kind {
		case "method":
			methods++
			if b.Name != "getBalance" {
				t.Errorf("method name = %q", b.Name)
			}
		case "class":
			classes++
			if b.Name != "Account" {
				t.Errorf("class name = %q", b.Name)
			}
		}
	}
	if methods != 1 || classes != 1 {
		t.Errorf("methods = %d, classes = %d, want 1 each", methods, classes)
	}
}

func TestParseFileDispatch(t *testing.T) {
	f := detect.FileRecord{
		Path:     "util.js",
		Language: lang.JavaScript.String(),
		Content:  "function twice(n) {\n  return n * 2;\n}\n",
		Lines:    []string{"function twice(n) {", "  return n * 2;", "}", ""},
	}

	got := New().ParseFile(f)
	if len(got.Tokens) == 0 {
		t.Error("expected tokens")
	}
	if len(got.Blocks) != 1 || got.Blocks[0].Name != "twice" {
		t.Errorf("blocks = %+v", got.Blocks)
	}
}

func TestParsePreservesOrder(t *testing.T) {
	var files []detect.FileRecord
	for i := 0; i < 40; i++ {
		path := fmt.Sprintf("f%02d.txt", i)
		files = append(files, detect.FileRecord{
			Path:     path,
			Language: lang.Unknown.String(),
			Content:  "token" + path,
		})
	}

	got := New(WithWorkers(8)).Parse(files, nil)
	if len(got) != len(files) {
		t.Fatalf("got %d records, want %d", len(got), len(files))
	}
	for i := range files {
		if got[i].Path != files[i].Path {
			t.Fatalf("order broken at %d: %s", i, got[i].Path)
		}
	}
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
