package ingest

import (
	"archive/zip"
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrInputUnavailable wraps every failure to open or read an input file.
var ErrInputUnavailable = errors.New("input unavailable")

type Parsed struct {
	Title      string
	SourcePath string
	Lines      []string
}

// ParseFile reads a book as lines. DOCX and PDF files yield one line per
// paragraph or extracted page line; any other file is read as plain text.
func ParseFile(path string) (*Parsed, error) {
	var (
		lines []string
		err   error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		lines, err = readDOCX(path)
	case ".pdf":
		lines, err = readPDF(path)
	default:
		lines, err = ReadLines(path)
	}
	if err != nil {
		return nil, err
	}

	return &Parsed{
		Title:      strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		SourcePath: path,
		Lines:      lines,
	}, nil
}

// ReadLines returns the lines of the file at path without line terminators.
// Lines may be any length. An empty file yields no lines.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrInputUnavailable, path, err)
	}
	defer f.Close()

	lines, err := splitLines(f)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrInputUnavailable, path, err)
	}
	return lines, nil
}

func splitLines(r io.Reader) ([]string, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	lines := make([]string, 0, 1024)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			lines = append(lines, strings.TrimSuffix(line, "\r"))
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func readDOCX(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrInputUnavailable, path, err)
	}
	text, err := parseDOCX(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInputUnavailable, path, err)
	}
	return strings.Split(text, "\n"), nil
}

func parseDOCX(raw []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("open docx zip: %w", err)
	}

	var xmlData []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, openErr := f.Open()
		if openErr != nil {
			return "", fmt.Errorf("open document.xml: %w", openErr)
		}
		xmlData, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("read document.xml: %w", err)
		}
		break
	}
	if len(xmlData) == 0 {
		return "", fmt.Errorf("word/document.xml not found")
	}

	decoder := xml.NewDecoder(bytes.NewReader(xmlData))
	var b strings.Builder
	inText := false
	for {
		tok, tokenErr := decoder.Token()
		if tokenErr == io.EOF {
			break
		}
		if tokenErr != nil {
			return "", fmt.Errorf("decode document.xml: %w", tokenErr)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
			if t.Name.Local == "p" && b.Len() > 0 {
				b.WriteString("\n")
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inText = false
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}

func readPDF(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open pdf %s: %v", ErrInputUnavailable, path, err)
	}
	defer f.Close()

	var b strings.Builder
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		content, pageErr := p.GetPlainText(nil)
		if pageErr != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return nil, fmt.Errorf("%w: no extractable text found in pdf %s", ErrInputUnavailable, path)
	}
	return splitLines(strings.NewReader(b.String()))
}
