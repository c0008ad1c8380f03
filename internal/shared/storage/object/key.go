package object

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"prep-backend/internal/shared/util"
)

const sniffLen = 512

// jdMimeTypes covers the upload formats the analyzer accepts.
var jdMimeTypes = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".html": "text/html; charset=utf-8",
	".htm":  "text/html; charset=utf-8",
	".txt":  "text/plain; charset=utf-8",
	".md":   "text/markdown; charset=utf-8",
}

// NewKey builds namespace/<yyyy-mm-dd>/<id>_<name> for an upload.
func NewKey(namespace, fileName string, now time.Time) (string, error) {
	name, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return path.Join(util.SanitizeNamespace(namespace), now.UTC().Format("2006-01-02"), id+"_"+name), nil
}

// Sniff reads the head of r to pick a content type and returns a reader
// that still yields the full body.
func Sniff(fileName string, r io.Reader) (string, io.Reader, error) {
	var head [sniffLen]byte
	n, err := io.ReadFull(r, head[:])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, fmt.Errorf("read sniff: %w", err)
	}
	mimeType, ok := jdMimeTypes[strings.ToLower(filepath.Ext(fileName))]
	if !ok {
		mimeType = http.DetectContentType(head[:n])
	}
	return mimeType, io.MultiReader(bytes.NewReader(head[:n]), r), nil
}
