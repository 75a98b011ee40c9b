package fswatcher

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/flytaly/scrapconv/pkg/log"
)

const MinInterval = time.Millisecond * 20

// Poller is a polling implementation of the Watcher interface over an fs.FS.
type Poller struct {
	// watched files and dirs
	watches map[string]struct{}
	// stores info about files and dirs inside watched paths
	files  map[string]fs.FileInfo
	events chan Event
	errors chan error
	done   chan struct{}
	skip   func(path string, fi fs.FileInfo) bool
	fsys   fs.FS
	// path to the root directory
	root    string
	running bool
	log     log.Logger

	mu     sync.Mutex
	closed bool
}

type Option func(*Poller)

// WithSkip excludes paths from watching. A skipped directory is not walked.
func WithSkip(fn func(path string, fi fs.FileInfo) bool) Option {
	return func(p *Poller) {
		p.skip = fn
	}
}

func WithLogger(l log.Logger) Option {
	return func(p *Poller) {
		p.log = l
	}
}

// NewPoller creates a poller over fsys. root is used to resolve absolute names passed to Add.
func NewPoller(fsys fs.FS, root string, options ...Option) *Poller {
	p := &Poller{
		events:  make(chan Event),
		errors:  make(chan error),
		done:    make(chan struct{}),
		fsys:    fsys,
		root:    root,
		watches: map[string]struct{}{},
		files:   map[string]fs.FileInfo{},
		log:     log.NewEmptyLog(),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Add adds given name into the list of the watched paths.
// If name is a directory, then retrieves FileInfo of nested files, saves them
// and returns.
func (p *Poller) Add(name string) (map[string]fs.FileInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, errors.New("poller is closed")
	}

	relativePath := name
	if filepath.IsAbs(relativePath) {
		var err error
		relativePath, err = filepath.Rel(p.root, name)
		if err != nil {
			return nil, err
		}
		relativePath = filepath.ToSlash(relativePath)
	}

	list, err := p.listDirFiles(relativePath)
	if err != nil {
		return nil, err
	}
	for fname, fi := range list {
		p.files[fname] = fi
	}
	p.watches[relativePath] = struct{}{}

	return list, nil
}

// listDirFiles returns list of the files if name is a directory,
// if name isn't a directory then just returns it's FileInfo.
func (p *Poller) listDirFiles(name string) (map[string]fs.FileInfo, error) {
	files := map[string]fs.FileInfo{}

	fInfo, err := fs.Stat(p.fsys, name)
	if err != nil {
		return nil, err
	}
	files[name] = fInfo

	if !fInfo.IsDir() {
		return files, nil
	}

	err = fs.WalkDir(p.fsys, name, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		stat, err := d.Info()
		if err != nil {
			return err
		}
		if path != name && p.skip != nil && p.skip(path, stat) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		files[path] = stat
		return nil
	})
	if err != nil {
		p.log.Warning("walk %s: %v", name, err)
	}

	return files, nil
}

// Scan compares the watched paths with the previous state and returns the
// changes, sorted by name. A removed file whose size and modification time
// match a new file is reported as a rename.
func (p *Poller) Scan() ([]Event, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	current := map[string]fs.FileInfo{}
	var scanErr error
	for path := range p.watches {
		files, err := p.listDirFiles(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				delete(p.watches, path)
				continue
			}
			scanErr = err
			continue
		}
		for name, fi := range files {
			current[name] = fi
		}
	}

	added := map[string]fs.FileInfo{}
	for name, fi := range current {
		if _, ok := p.files[name]; !ok {
			added[name] = fi
		}
	}

	events := []Event{}
	renamed := map[string]struct{}{}
	for _, name := range sortedKeys(p.files) {
		oldFi := p.files[name]
		if newFi, ok := current[name]; ok {
			if !oldFi.ModTime().Equal(newFi.ModTime()) || oldFi.Size() != newFi.Size() {
				events = append(events, Event{Op: Write, Name: name})
			}
			continue
		}
		if to, ok := findMoved(oldFi, added, renamed); ok {
			renamed[to] = struct{}{}
			events = append(events, Event{Op: Rename, Name: name, NewPath: to})
			continue
		}
		events = append(events, Event{Op: Remove, Name: name})
	}
	for _, name := range sortedKeys(added) {
		if _, ok := renamed[name]; !ok {
			events = append(events, Event{Op: Create, Name: name})
		}
	}

	p.files = current
	return events, scanErr
}

func findMoved(old fs.FileInfo, added map[string]fs.FileInfo, taken map[string]struct{}) (string, bool) {
	for _, name := range sortedKeys(added) {
		if _, ok := taken[name]; ok {
			continue
		}
		if sameFile(old, added[name]) {
			return name, true
		}
	}
	return "", false
}

func sortedKeys(m map[string]fs.FileInfo) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Start polls the watched paths until Close is called.
func (p *Poller) Start(interval time.Duration) error {
	if interval < MinInterval {
		interval = MinInterval
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return errors.New("poller is closed")
	}
	if p.running {
		p.mu.Unlock()
		return errors.New("watcher is already running")
	}
	p.running = true
	p.mu.Unlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-p.done:
			return nil
		case <-ticker.C:
		}

		events, err := p.Scan()
		if err != nil {
			select {
			case p.errors <- err:
			case <-p.done:
				return nil
			}
		}
		for _, e := range events {
			select {
			case p.events <- e:
			case <-p.done:
				return nil
			}
		}
	}
}

// Remove forgets a file or a watched path.
func (p *Poller) Remove(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.files, name)
	delete(p.watches, name)
	return nil
}

func (p *Poller) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	close(p.done)
	p.closed = true
	p.running = false
	return nil
}

func (p *Poller) Errors() <-chan error {
	return p.errors
}

func (p *Poller) Events() <-chan Event {
	return p.events
}

// Files returns a copy of the known files and folders.
func (p *Poller) Files() map[string]fs.FileInfo {
	p.mu.Lock()
	defer p.mu.Unlock()

	files := make(map[string]fs.FileInfo, len(p.files))
	for k, v := range p.files {
		files[k] = v
	}
	return files
}

// sameFile reports whether two infos describe the same file. Infos from the
// os package are compared by identity, others by metadata.
func sameFile(a, b fs.FileInfo) bool {
	if a.Sys() != nil && b.Sys() != nil {
		return os.SameFile(a, b)
	}
	return a.IsDir() == b.IsDir() &&
		a.Size() == b.Size() &&
		a.Mode() == b.Mode() &&
		a.ModTime().Equal(b.ModTime())
}
