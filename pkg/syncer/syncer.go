package syncer

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/flytaly/scrapconv/pkg/ast"
	"github.com/flytaly/scrapconv/pkg/convert"
	"github.com/flytaly/scrapconv/pkg/fswatcher"
	"github.com/flytaly/scrapconv/pkg/log"
	"github.com/pkg/errors"
)

var ExcludedDirs = map[string]bool{"node_modules": true}

const MaxFileSize int64 = 1024 * 1024

// Conversion describes one exported file.
type Conversion struct {
	Source string
	Output string
	Size   int64 // bytes written
	Time   time.Time
	Err    error
}

// Syncer keeps a Markdown copy next to every Scrapbox export under root.
type Syncer struct {
	fileSystem  fs.FS
	root        string // path to the root directory
	MaxFileSize int64  // max file size in bytes for convertible files

	// Outputs maps a source file to the Markdown file generated from it.
	Outputs map[string]string

	Watcher   fswatcher.Watcher
	WriteFile func(path string, data []byte) error
	Remove    func(path string) error
	// OnConvert is called after every conversion attempt.
	OnConvert func(Conversion)

	conv       *convert.Converter
	stopEvents chan struct{}
	log        log.Logger
	paused     bool
	mu         sync.Mutex
}

func isSource(name string) bool {
	d, ok := convert.DialectOf(name)
	return ok && d == ast.Scrapbox
}

func (s *Syncer) shouldSkip(path string, fi fs.FileInfo) bool {
	name := fi.Name()
	if fi.IsDir() {
		return strings.HasPrefix(name, ".") || ExcludedDirs[name]
	}
	if isSource(name) {
		return fi.Size() > s.MaxFileSize
	}
	return true
}

// New creates a Syncer for fileSystem rooted at root.
func New(fileSystem fs.FS, root string, conv *convert.Converter, logger log.Logger, options ...func(*Syncer)) *Syncer {
	if logger == nil {
		logger = log.NewEmptyLog()
	}
	s := &Syncer{
		fileSystem:  fileSystem,
		root:        root,
		MaxFileSize: MaxFileSize,
		Outputs:     map[string]string{},
		WriteFile:   writeFile,
		Remove:      os.Remove,
		conv:        conv,
		stopEvents:  make(chan struct{}),
		log:         logger,
	}
	s.Watcher = fswatcher.NewPoller(fileSystem, root,
		fswatcher.WithSkip(s.shouldSkip),
		fswatcher.WithLogger(logger))

	for _, option := range options {
		option(s)
	}
	return s
}

func writeFile(path string, data []byte) error {
	mode := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	return os.WriteFile(path, data, mode)
}

// ProcessFiles walks the file tree and converts every Scrapbox file.
func (s *Syncer) ProcessFiles() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := time.Now()
	paths, err := s.Watcher.Add(".")
	if err != nil {
		s.log.Error("Couldn't add folder %s to watcher: %v", s.root, err)
		return time.Since(t)
	}
	for path, fi := range paths {
		if !fi.IsDir() && isSource(path) {
			s.Convert(path)
		}
	}
	// sources deleted while no events were processed
	for path := range s.Outputs {
		if _, ok := paths[path]; !ok {
			s.RemoveFile(path)
		}
	}
	return time.Since(t)
}

// Convert exports a single file and records its output.
func (s *Syncer) Convert(path string) {
	c := Conversion{Source: path, Time: time.Now()}
	defer func() {
		if s.OnConvert != nil {
			s.OnConvert(c)
		}
	}()

	fi, err := fs.Stat(s.fileSystem, path)
	if err != nil {
		c.Err = errors.Wrap(err, "stat")
		s.log.Error("Couldn't get FileInfo. %s", err)
		return
	}
	if fi.Size() > s.MaxFileSize {
		c.Err = errors.Errorf("%s is larger than %d bytes", path, s.MaxFileSize)
		s.log.Warning("Skipped %s: file is too large", path)
		return
	}

	out, to, err := s.conv.File(s.fileSystem, path)
	if err != nil {
		c.Err = err
		s.log.Error("Couldn't convert %s: %v", path, err)
		return
	}
	c.Output = convert.OutputPath(path, to)
	if err := s.WriteFile(filepath.Join(s.root, c.Output), []byte(out)); err != nil {
		c.Err = errors.Wrap(err, "write")
		s.log.Error("Couldn't write %s: %v", c.Output, err)
		return
	}
	c.Size = int64(len(out))
	s.Outputs[path] = c.Output
	s.log.Info("Converted: %s -> %s", path, c.Output)
}

// RemoveFile deletes the output generated from path.
func (s *Syncer) RemoveFile(path string) {
	out, ok := s.Outputs[path]
	if !ok {
		return
	}
	delete(s.Outputs, path)
	if err := s.Remove(filepath.Join(s.root, out)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.Error("Couldn't remove %s: %v", out, err)
		return
	}
	s.log.Info("Removed: %s", out)
}

// MoveFile converts the file under its new name and drops the stale output.
// Files inside a moved directory get their own rename events.
func (s *Syncer) MoveFile(oldPath, newPath string) {
	s.RemoveFile(oldPath)
	if isSource(newPath) {
		s.Convert(newPath)
	}
	s.log.Info("File moved: %s -> %s", oldPath, newPath)
}

func (s *Syncer) processEvent(event fswatcher.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paused {
		return
	}
	switch event.Op {
	case fswatcher.Create, fswatcher.Write:
		if isSource(event.Name) {
			s.Convert(event.Name)
		}
	case fswatcher.Remove:
		s.RemoveFile(event.Name)
	case fswatcher.Rename:
		s.MoveFile(event.Name, event.NewPath)
	}
}

func (s *Syncer) WatchEvents() {
	for {
		select {
		case event := <-s.Watcher.Events():
			s.log.Debug("%s %s", event.Op, event.Name)
			s.processEvent(event)
		case err := <-s.Watcher.Errors():
			s.log.Error("%s", err)
		case <-s.stopEvents:
			return
		}
	}
}

func (s *Syncer) StartFileWatcher(interval time.Duration) {
	err := s.Watcher.Start(interval)
	if err != nil {
		s.log.Error("%s", err)
	}
}

func (s *Syncer) StopEventListeners() {
	close(s.stopEvents)
}

func (s *Syncer) Watch(interval time.Duration) {
	go s.WatchEvents()
	go s.StartFileWatcher(interval)
}

// Pause stops reacting to file events. Changes made while paused are
// picked up by the next ProcessFiles.
func (s *Syncer) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = true
}

// Resume converts every file again, drops outputs of deleted sources and
// reacts to events.
func (s *Syncer) Resume() time.Duration {
	s.mu.Lock()
	s.paused = false
	s.mu.Unlock()
	return s.ProcessFiles()
}

func (s *Syncer) SourcesNum() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Outputs)
}

func (s *Syncer) Close() error {
	err := s.Watcher.Close()
	if lerr := s.log.Close(); err == nil {
		err = lerr
	}
	return err
}
