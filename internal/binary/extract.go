package binary

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyArchive is returned when an archive contains no regular files.
var ErrEmptyArchive = errors.New("archive contains no files")

// Extractor handles archive extraction
type Extractor struct{}

// NewExtractor creates a new extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract unpacks archivePath into destDir according to kind.
func (e *Extractor) Extract(archivePath, destDir string, kind ArchiveKind) error {
	switch kind {
	case ArchiveGzipTar:
		return e.ExtractTarGz(archivePath, destDir)
	default:
		return fmt.Errorf("unsupported archive kind: %q", kind)
	}
}

// ExtractTarGz extracts a .tar.gz archive to a destination directory.
//
// Every write goes through an os.Root opened on destDir, so an entry whose
// path resolves through a symlink to somewhere outside destDir fails.
func (e *Extractor) ExtractTarGz(archivePath, destDir string) error {
	archiveFile, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer archiveFile.Close()

	gzipReader, err := gzip.NewReader(archiveFile)
	if err != nil {
		return fmt.Errorf("create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	tarReader := tar.NewReader(gzipReader)

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}
	destDir = filepath.Clean(destDir)
	prefix := destDir + string(os.PathSeparator)

	root, err := os.OpenRoot(destDir)
	if err != nil {
		return fmt.Errorf("open dest dir: %w", err)
	}
	defer root.Close()

	files := 0
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read tar header: %w", err)
		}

		target := filepath.Join(destDir, header.Name)

		// Security check: prevent path traversal
		if !strings.HasPrefix(target+string(os.PathSeparator), prefix) {
			return fmt.Errorf("illegal file path: %s", header.Name)
		}
		name, err := filepath.Rel(destDir, target)
		if err != nil {
			return fmt.Errorf("illegal file path: %s", header.Name)
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if name == "." {
				continue
			}
			if err := root.MkdirAll(name, 0755); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}

		case tar.TypeReg:
			if err := writeFile(root, name, tarReader, os.FileMode(header.Mode).Perm()); err != nil {
				return err
			}
			files++

		case tar.TypeSymlink:
			if filepath.IsAbs(header.Linkname) {
				return fmt.Errorf("illegal symlink target: %s -> %s", header.Name, header.Linkname)
			}
			resolved := filepath.Join(filepath.Dir(target), header.Linkname)
			if !strings.HasPrefix(resolved+string(os.PathSeparator), prefix) {
				return fmt.Errorf("illegal symlink target: %s -> %s", header.Name, header.Linkname)
			}
			if err := mkdirParent(root, name); err != nil {
				return err
			}
			if err := root.Symlink(header.Linkname, name); err != nil {
				return fmt.Errorf("create symlink %s: %w", target, err)
			}

		default:
			// Skip other types (char devices, block devices, etc.)
			continue
		}
	}

	if files == 0 {
		return ErrEmptyArchive
	}
	return nil
}

// mkdirParent creates the parent directory of name inside root.
func mkdirParent(root *os.Root, name string) error {
	dir := filepath.Dir(name)
	if dir == "." {
		return nil
	}
	if err := root.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create parent dir for %s: %w", name, err)
	}
	return nil
}

// writeFile copies r into a new file at name inside root with the given permissions.
func writeFile(root *os.Root, name string, r io.Reader, perm os.FileMode) error {
	if err := mkdirParent(root, name); err != nil {
		return err
	}
	if perm == 0 {
		perm = 0644
	}

	outFile, err := root.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("create file %s: %w", name, err)
	}

	if _, err := io.Copy(outFile, r); err != nil {
		outFile.Close()
		return fmt.Errorf("write file %s: %w", name, err)
	}

	if err := outFile.Close(); err != nil {
		return fmt.Errorf("close file %s: %w", name, err)
	}
	return nil
}
