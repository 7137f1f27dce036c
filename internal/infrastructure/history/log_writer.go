package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/doeshing/investigator-go/internal/domain"
	"github.com/doeshing/investigator-go/internal/ports"
)

// LogWriter writes one text file per execution under dir.
// Names are <YYYYMMDD_HHMMSS>_<action>_<target>.txt; a second write with the
// same name in the same second replaces the first.
type LogWriter struct {
	dir string
}

// NewLogWriter returns a writer rooted at dir. The directory is created on first write.
func NewLogWriter(dir string) *LogWriter {
	return &LogWriter{dir: dir}
}

// Dir returns the logs directory.
func (w *LogWriter) Dir() string {
	return w.dir
}

// Write implements ports.ExecutionLogWriter.
func (w *LogWriter) Write(entry domain.ExecutionLog) (string, error) {
	if err := os.MkdirAll(w.dir, domain.DirectoryPermissions); err != nil {
		return "", fmt.Errorf("create logs dir: %w", err)
	}
	path := filepath.Join(w.dir, LogFileName(entry))
	if err := os.WriteFile(path, []byte(entry.RawOutput), domain.FilePermissions); err != nil {
		return "", fmt.Errorf("write log: %w", err)
	}
	return path, nil
}

// LogFileName builds the artifact name for entry. Path separators in the
// target are replaced so the file always lands directly in the logs dir.
func LogFileName(entry domain.ExecutionLog) string {
	target := strings.NewReplacer("/", "_", `\`, "_").Replace(entry.Target)
	return fmt.Sprintf("%s_%s_%s.txt",
		entry.Timestamp.Format(domain.LogFileTimestampFormat),
		entry.Action,
		target,
	)
}

// LogFile describes one artifact on disk.
type LogFile struct {
	Name string
	Path string
	Size int64
}

// List returns the artifacts in the logs dir, newest name first.
func (w *LogWriter) List() ([]LogFile, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var files []LogFile
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".txt" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, LogFile{Name: e.Name(), Path: filepath.Join(w.dir, e.Name()), Size: info.Size()})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name > files[j].Name })
	return files, nil
}

var _ ports.ExecutionLogWriter = (*LogWriter)(nil)
