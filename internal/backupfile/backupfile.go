package backupfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/mywallet-dev/mywallet/internal/id"
)

// MaxSize caps how much of a backup file is read.
const MaxSize = 32 << 20

const (
	processedDir = "processed"
	maxPerDay    = 1000
)

// ErrTooLarge means a file exceeded MaxSize.
var ErrTooLarge = errors.New("backup file too large")

// File is an exported backup ready to be written.
type File struct {
	Name string
	Data []byte
}

// FileInfo describes a backup file in the inbox.
type FileInfo struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}

// Write stores f in dir. Names following the export convention get a
// sequence suffix instead of overwriting an earlier export; any other name
// must not exist yet. Returns the path written.
func Write(dir string, f File) (string, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("creating backup dir: %w", err)
	}

	date, seq, err := id.ParseBackupName(f.Name)
	if err != nil {
		return create(filepath.Join(dir, filepath.Base(f.Name)), f.Data)
	}
	for limit := seq + maxPerDay; seq < limit; seq++ {
		path, err := create(filepath.Join(dir, id.FormatBackupName(date, seq)), f.Data)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		return path, err
	}
	return "", fmt.Errorf("too many backups for %s in %s", date.Format("2006-01-02"), dir)
}

func create(path string, data []byte) (string, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}

// Read returns the contents of a backup file, refusing files over MaxSize.
func Read(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening backup: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading backup: %w", err)
	}
	if len(data) > MaxSize {
		return nil, fmt.Errorf("%w: %s", ErrTooLarge, path)
	}
	return data, nil
}

// Scan returns the JSON files waiting in the inbox directory, oldest first.
// A missing inbox yields no files.
func Scan(inbox string) ([]FileInfo, error) {
	entries, err := os.ReadDir(inbox)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading inbox: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name:    e.Name(),
			Path:    filepath.Join(inbox, e.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	slices.SortFunc(files, func(a, b FileInfo) int {
		if c := a.ModTime.Compare(b.ModTime); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return files, nil
}

// MarkProcessed moves a file from the inbox to inbox/processed/. A file of
// the same name already there is kept; the moved file gets a "-n" suffix.
func MarkProcessed(inbox, fileName string) error {
	src := filepath.Join(inbox, fileName)
	dstDir := filepath.Join(inbox, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	ext := filepath.Ext(fileName)
	stem := strings.TrimSuffix(fileName, ext)
	for n := 0; n < maxPerDay; n++ {
		name := fileName
		if n > 0 {
			name = fmt.Sprintf("%s-%d%s", stem, n, ext)
		}
		// Link fails instead of replacing an existing file.
		err := os.Link(src, filepath.Join(dstDir, name))
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("moving %s to processed: %w", fileName, err)
		}
		if err := os.Remove(src); err != nil {
			return fmt.Errorf("removing %s from inbox: %w", fileName, err)
		}
		return nil
	}
	return fmt.Errorf("moving %s to processed: too many files with that name", fileName)
}
