package block

import "testing"

func TestNormalizeSpace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  hello   world  ", "hello world"},
		{"tabs\tand\nnewlines", "tabs and newlines"},
		{"", ""},
		{"   ", ""},
		{"already clean", "already clean"},
	}
	for _, tt := range tests {
		if got := NormalizeSpace(tt.in); got != tt.want {
			t.Errorf("NormalizeSpace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDocument_BlocksReadingOrder(t *testing.T) {
	doc := &Document{
		Name: "multi.pdf",
		Pages: []Page{
			{Number: 1, Blocks: []TextBlock{{Text: "one", Page: 1}, {Text: "two", Page: 1}}},
			{Number: 2, Blocks: []TextBlock{{Text: "three", Page: 2}}},
		},
	}

	blocks := doc.Blocks()
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}
	want := []string{"one", "two", "three"}
	for i, w := range want {
		if blocks[i].Text != w {
			t.Errorf("block %d: expected %q, got %q", i, w, blocks[i].Text)
		}
	}
}

func TestDocument_PlainText(t *testing.T) {
	doc := &Document{
		Pages: []Page{
			{Number: 1, Blocks: []TextBlock{{Text: "alpha"}, {Text: ""}, {Text: "beta"}}},
			{Number: 2, Blocks: []TextBlock{{Text: "gamma"}}},
		},
	}
	if got := doc.PlainText(); got != "alpha beta gamma" {
		t.Errorf("unexpected plain text: %q", got)
	}
}

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		ok       bool
	}{
		{"report.pdf", true},
		{"report.PDF", true},
		{"notes.docx", true},
		{"page.html", true},
		{"page.htm", true},
		{"readme.md", true},
		{"readme.markdown", true},
		{"notes.txt", true},
		{"image.png", false},
		{"archive.zip", false},
		{"noextension", false},
	}
	for _, tt := range tests {
		_, err := ForFile(tt.filename)
		if tt.ok && err != nil {
			t.Errorf("ForFile(%q): unexpected error %v", tt.filename, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("ForFile(%q): expected error", tt.filename)
		}
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("South of France - Cities.pdf") {
		t.Error("expected .pdf to be supported")
	}
	if IsSupportedExtension("collection.json") {
		t.Error("expected .json to be unsupported")
	}
}
