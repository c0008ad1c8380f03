package ingest

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func buildDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	files := map[string]string{
		"[Content_Types].xml":          `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml":            body.String(),
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create: %v", err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func TestExtractText_PlainText(t *testing.T) {
	text, err := ExtractText(context.Background(), []byte("  Go and Kubernetes  \n"), "text/plain; charset=utf-8", "jd.txt")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if text != "Go and Kubernetes" {
		t.Fatalf("got %q", text)
	}
}

func TestExtractText_DOCX(t *testing.T) {
	data := buildDOCX(t, "Senior Backend Engineer", "Experience with Go, SQL and Docker")

	text, err := ExtractText(context.Background(), data, MimeDOCX, "jd.docx")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(text, "Senior Backend Engineer\n") || !strings.Contains(text, "Experience with Go, SQL and Docker") {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestExtractText_DOCXDetectedFromZipMime(t *testing.T) {
	data := buildDOCX(t, "React developer")

	text, err := ExtractText(context.Background(), data, "application/zip", "upload.bin")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if text != "React developer" {
		t.Fatalf("got %q", text)
	}
}

func TestExtractText_HTML(t *testing.T) {
	html := `<html><head><script>var x = "Kafka";</script></head>
<body><nav>Home | Jobs</nav><ul><li>React</li><li>Node.js</li></ul></body></html>`

	text, err := ExtractText(context.Background(), []byte(html), "", "posting.html")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if text != "React\nNode.js" {
		t.Fatalf("got %q", text)
	}
}

func TestExtractText_Errors(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	cases := []struct {
		name     string
		ctx      context.Context
		data     []byte
		mime     string
		fileName string
		want     error
		contains string
	}{
		{name: "unsupported", ctx: context.Background(), data: []byte{0x89, 0x50, 0x4e, 0x47}, mime: "image/png", fileName: "logo.png", want: ErrUnsupportedType},
		{name: "empty", ctx: context.Background(), data: []byte("   \n\t"), mime: MimeText, fileName: "blank.txt", want: ErrEmptyText},
		{name: "invalid_pdf", ctx: context.Background(), data: []byte("not a pdf"), mime: MimePDF, fileName: "jd.pdf", contains: "extract application/pdf"},
		{name: "canceled", ctx: canceled, data: []byte("Go"), mime: MimeText, fileName: "jd.txt", want: context.Canceled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ExtractText(tc.ctx, tc.data, tc.mime, tc.fileName)
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if tc.contains != "" && !strings.Contains(err.Error(), tc.contains) {
				t.Fatalf("expected %q in %v", tc.contains, err)
			}
		})
	}
}

func TestDetectType(t *testing.T) {
	cases := []struct {
		name     string
		mime     string
		fileName string
		data     []byte
		want     string
	}{
		{name: "explicit pdf", mime: "application/pdf", fileName: "x", want: MimePDF},
		{name: "extension wins over octet stream", mime: "application/octet-stream", fileName: "jd.PDF", want: MimePDF},
		{name: "markdown is text", fileName: "jd.md", want: MimeText},
		{name: "xhtml", mime: "application/xhtml+xml", want: MimeHTML},
		{name: "sniffed html", data: []byte("<!DOCTYPE html><html><body>hi</body></html>"), want: MimeHTML},
		{name: "sniffed text", data: []byte("plain words"), want: MimeText},
		{name: "unknown stays", mime: "image/png", fileName: "logo", want: "image/png"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectType(tc.mime, tc.fileName, tc.data); got != tc.want {
				t.Fatalf("DetectType = %q, want %q", got, tc.want)
			}
		})
	}
}
