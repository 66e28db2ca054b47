// Package manuals turns the investigation manuals into citable excerpts: pages
// are loaded with their source and page number, split into overlapping chunks
// and ranked against an officer's question.
package manuals

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// ErrNoManuals is returned when a path holds no readable manual text.
var ErrNoManuals = errors.New("no manual pages found")

// pageBreak separates pages in plain-text manuals, as pdftotext does.
const pageBreak = "\f"

// Page is one page of a manual. Number starts at 1.
type Page struct {
	Source string
	Number int
	Text   string
}

// Load reads a manual file, or every supported manual under a directory.
// PDFs are read page by page; .txt and .md files are split on form feeds.
func Load(path string) ([]Page, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manuals: %w", err)
	}

	var files []string
	if info.IsDir() {
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && supported(p) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan manuals: %w", err)
		}
		sort.Strings(files)
	} else {
		files = []string{path}
	}

	var pages []Page
	for _, f := range files {
		p, err := loadFile(f)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p...)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoManuals, path)
	}
	return pages, nil
}

func supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".txt", ".md":
		return true
	}
	return false
}

func loadFile(path string) ([]Page, error) {
	source := filepath.Base(path)
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		pages, err := readPDF(path, source)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", source, err)
		}
		return pages, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	defer f.Close()
	return ReadText(source, f)
}

// ReadText splits a plain-text manual into pages on form feeds.
func ReadText(source string, r io.Reader) ([]Page, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	var pages []Page
	for i, text := range strings.Split(string(data), pageBreak) {
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, Page{Source: source, Number: i + 1, Text: text})
		}
	}
	return pages, nil
}

func readPDF(path, source string) ([]Page, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		if f != nil {
			f.Close()
		}
		return nil, err
	}
	defer f.Close()

	var pages []Page
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, Page{Source: source, Number: i, Text: text})
		}
	}
	return pages, nil
}
