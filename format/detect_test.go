package format

import (
	"archive/zip"
	"bytes"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PDF, "PDF"},
		{DOCX, "DOCX"},
		{HTML, "HTML"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PDF, ".pdf"},
		{DOCX, ".docx"},
		{HTML, ".html"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"document.pdf", PDF},
		{"document.PDF", PDF},
		{"document.docx", DOCX},
		{"page.html", HTML},
		{"page.htm", HTML},
		{"notes.txt", Unknown},
		{"noextension", Unknown},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"pdf", []byte("%PDF-1.7\n"), PDF},
		{"html doctype", []byte("<!DOCTYPE html><html></html>"), HTML},
		{"html leading whitespace", []byte("\n  <html lang=\"en\">"), HTML},
		{"zip is ambiguous", []byte{0x50, 0x4B, 0x03, 0x04, 0x00}, Unknown},
		{"too short", []byte("%P"), Unknown},
		{"plain text", []byte("hello world, this is text"), Unknown},
	}

	for _, tt := range tests {
		if got := DetectFromMagic(tt.data); got != tt.want {
			t.Errorf("%s: DetectFromMagic = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDetectFromReader_DOCX(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{"[Content_Types].xml", "word/document.xml"} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		w.Write([]byte("<xml/>"))
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := DetectFromReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("DetectFromReader: %v", err)
	}
	if got != DOCX {
		t.Errorf("DetectFromReader = %v, want DOCX", got)
	}
}

func TestDetectFromReader_OtherZIP(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("README.md")
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte("not a document"))
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := DetectFromReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("DetectFromReader: %v", err)
	}
	if got != Unknown {
		t.Errorf("DetectFromReader = %v, want Unknown", got)
	}
}
