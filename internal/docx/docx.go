// Package docx implements the DOCX container: unpacking the zip package
// into a private scratch directory, access to the main document part, and
// deterministic repacking.
package docx

import (
	"archive/zip"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DocumentPath is the archive member holding the document body.
const DocumentPath = "word/document.xml"

// Package is a DOCX archive unpacked into a scratch directory. The scratch
// directory is exclusively owned by this instance; Close removes it.
type Package struct {
	source  string
	root    string
	members []string
}

// Unpack extracts the archive at path into a fresh scratch directory.
// It fails with a FormatError when the file is not a zip archive or has no
// word/document.xml member, and with an IOError on filesystem failure.
func Unpack(path string) (*Package, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			return nil, NewFormatError(path, "not a zip archive", err)
		}
		return nil, NewIOError("unpack", path, err)
	}
	defer zr.Close()

	hasDocument := false
	for _, f := range zr.File {
		if f.Name == DocumentPath {
			hasDocument = true
			break
		}
	}
	if !hasDocument {
		return nil, NewFormatError(path, "not a DOCX package: missing "+DocumentPath, nil)
	}

	scratch, err := os.MkdirTemp("", "transdoc-*")
	if err != nil {
		return nil, NewIOError("unpack", path, err)
	}

	p := &Package{source: path, root: scratch}
	for _, f := range zr.File {
		if err := p.extractMember(f); err != nil {
			p.Close()
			return nil, err
		}
		if !f.FileInfo().IsDir() {
			p.members = append(p.members, f.Name)
		}
	}
	return p, nil
}

func (p *Package) extractMember(f *zip.File) error {
	dest := filepath.Join(p.root, filepath.FromSlash(f.Name))

	// Reject member names that would escape the scratch directory.
	rel, err := filepath.Rel(p.root, dest)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return NewFormatError(p.source, "member path escapes package root: "+f.Name, nil)
	}

	if f.FileInfo().IsDir() {
		if err := os.MkdirAll(dest, 0755); err != nil {
			return NewIOError("unpack", dest, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return NewIOError("unpack", dest, err)
	}

	rc, err := f.Open()
	if err != nil {
		return NewIOError("unpack", f.Name, err)
	}
	defer rc.Close()

	out, err := os.Create(dest)
	if err != nil {
		return NewIOError("unpack", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return NewIOError("unpack", dest, err)
	}
	return nil
}

// Members returns the archive member names in their original order.
func (p *Package) Members() []string {
	out := make([]string, len(p.members))
	copy(out, p.members)
	return out
}

// ReadDocument returns the bytes of the main document part.
func (p *Package) ReadDocument() ([]byte, error) {
	data, err := os.ReadFile(p.documentFile())
	if err != nil {
		return nil, NewIOError("read", DocumentPath, err)
	}
	return data, nil
}

// WriteDocument replaces the main document part in the scratch area.
func (p *Package) WriteDocument(data []byte) error {
	if err := os.WriteFile(p.documentFile(), data, 0644); err != nil {
		return NewIOError("write", DocumentPath, err)
	}
	return nil
}

func (p *Package) documentFile() string {
	return filepath.Join(p.root, filepath.FromSlash(DocumentPath))
}

// Pack writes all members to a new zip archive at path, walking the
// scratch tree in lexical order so repacking is reproducible. On failure
// no partial archive is left behind.
func (p *Package) Pack(path string) error {
	out, err := os.Create(path)
	if err != nil {
		return NewIOError("pack", path, err)
	}

	zw := zip.NewWriter(out)
	walkErr := filepath.WalkDir(p.root, func(fp string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(p.root, fp)
		if err != nil {
			return err
		}
		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		in, err := os.Open(fp)
		if err != nil {
			return err
		}
		defer in.Close()
		_, err = io.Copy(w, in)
		return err
	})
	if walkErr != nil {
		zw.Close()
		out.Close()
		os.Remove(path)
		return NewIOError("pack", path, walkErr)
	}

	if err := zw.Close(); err != nil {
		out.Close()
		os.Remove(path)
		return NewIOError("pack", path, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return NewIOError("pack", path, err)
	}
	return nil
}

// Close removes the scratch directory. It is safe to call more than once.
func (p *Package) Close() error {
	if p.root == "" {
		return nil
	}
	root := p.root
	p.root = ""
	if err := os.RemoveAll(root); err != nil {
		return NewIOError("cleanup", root, err)
	}
	return nil
}
