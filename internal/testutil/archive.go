package testutil

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
)

// TarEntry is one member of a test archive.
type TarEntry struct {
	Name     string
	Body     string
	Mode     int64
	Typeflag byte   // defaults to tar.TypeReg
	Linkname string // for symlinks
}

// TarGz builds a gzip-compressed tar archive in memory.
func TarGz(t *testing.T, entries ...TarEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	tarWriter := tar.NewWriter(gzipWriter)

	for _, e := range entries {
		header := &tar.Header{
			Name:     e.Name,
			Mode:     e.Mode,
			Typeflag: e.Typeflag,
			Linkname: e.Linkname,
		}
		if header.Typeflag == 0 {
			header.Typeflag = tar.TypeReg
		}
		if header.Mode == 0 {
			header.Mode = 0o644
			if header.Typeflag == tar.TypeDir {
				header.Mode = 0o755
			}
		}
		if header.Typeflag == tar.TypeReg {
			header.Size = int64(len(e.Body))
		}

		if err := tarWriter.WriteHeader(header); err != nil {
			t.Fatalf("failed to write header for %s: %v", e.Name, err)
		}
		if header.Typeflag == tar.TypeReg {
			if _, err := tarWriter.Write([]byte(e.Body)); err != nil {
				t.Fatalf("failed to write content for %s: %v", e.Name, err)
			}
		}
	}

	if err := tarWriter.Close(); err != nil {
		t.Fatalf("failed to close tar writer: %v", err)
	}
	if err := gzipWriter.Close(); err != nil {
		t.Fatalf("failed to close gzip writer: %v", err)
	}
	return buf.Bytes()
}

// WriteTarGz writes a test archive to a file under t.TempDir and returns its path.
func WriteTarGz(t *testing.T, entries ...TarEntry) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.tgz")
	if err := os.WriteFile(path, TarGz(t, entries...), 0o644); err != nil {
		t.Fatalf("failed to write archive: %v", err)
	}
	return path
}

// ServerPackage returns the entries of a published server archive whose
// executable lives at package/dist/<exe>.
func ServerPackage(exe string) []TarEntry {
	return []TarEntry{
		{Name: "package/", Typeflag: tar.TypeDir},
		{Name: "package/dist/", Typeflag: tar.TypeDir},
		{Name: "package/dist/" + exe, Body: "#!/bin/sh\necho azmcp\n", Mode: 0o755},
		{Name: "package/package.json", Body: `{"name":"@azure/mcp"}`},
	}
}
