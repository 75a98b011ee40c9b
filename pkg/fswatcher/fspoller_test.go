package fswatcher

import (
	"io/fs"
	"path"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/flytaly/scrapconv/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var j = path.Join

// return fs with files and folders from a slice with filenames,
// every file gets its own name as content
func createFS(files []string) fstest.MapFS {
	ff := fstest.MapFS{}
	for _, v := range files {
		if filepath.Ext(v) == "" { // is dir
			ff[v] = &fstest.MapFile{Mode: fs.ModeDir}
			continue
		}
		ff[v] = &fstest.MapFile{Data: []byte(v)}
	}
	return ff
}

func scan(t *testing.T, p *Poller) []Event {
	t.Helper()
	events, err := p.Scan()
	require.NoError(t, err)
	return events
}

func TestAdd(t *testing.T) {
	t.Run("add files", func(t *testing.T) {
		root := "path"
		fileList := []string{
			j(root, "notes"),
			j(root, "notes", "page.sb"),
			j(root, "notes", "some_dir"),
			j(root, "notes", "some_dir", "page2.sb"),
		}
		fsys := createFS(fileList)
		fsys[j(root, "notes", ".git")] = &fstest.MapFile{Mode: fs.ModeDir}
		fsys[j(root, "notes", ".git", "HEAD.sb")] = &fstest.MapFile{}

		p := NewPoller(fsys, ".", WithSkip(func(path string, fi fs.FileInfo) bool {
			return fi.Name() == ".git"
		}))
		list, err := p.Add(j(root, "notes"))
		require.NoError(t, err)

		testutils.CompareKeys(t, list, fileList)
		testutils.CompareKeys(t, p.Files(), fileList)
	})

	t.Run("error if closed", func(t *testing.T) {
		p := NewPoller(fstest.MapFS{}, ".")
		require.NoError(t, p.Close())
		_, err := p.Add("file")
		assert.EqualError(t, err, "poller is closed")
	})

	t.Run("file does not exist", func(t *testing.T) {
		p := NewPoller(fstest.MapFS{}, ".")
		_, err := p.Add("some_folder")
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("absolute path", func(t *testing.T) {
		fsys := createFS([]string{"notes", "notes/a.sb"})
		p := NewPoller(fsys, "/home/user")
		list, err := p.Add("/home/user/notes")
		require.NoError(t, err)
		assert.Contains(t, list, "notes/a.sb")
	})
}

func TestRemove(t *testing.T) {
	fsys := createFS([]string{"path1", "path2"})
	p := NewPoller(fsys, ".")
	_, _ = p.Add("path1")
	_, _ = p.Add("path2")
	require.NoError(t, p.Remove("path1"))
	files := p.Files()
	assert.Contains(t, files, "path2")
	assert.NotContains(t, files, "path1")
}

func TestScan(t *testing.T) {
	t.Run("CREATE", func(t *testing.T) {
		fsys := createFS([]string{"file.sb"})
		p := NewPoller(fsys, ".")
		_, err := p.Add(".")
		require.NoError(t, err)

		fsys["new1.sb"] = &fstest.MapFile{Data: []byte("1")}
		fsys["newFolder/file.sb"] = &fstest.MapFile{Data: []byte("22")}

		assert.Equal(t, []Event{
			{Op: Create, Name: "new1.sb"},
			{Op: Create, Name: "newFolder"},
			{Op: Create, Name: "newFolder/file.sb"},
		}, scan(t, p))
		assert.Empty(t, scan(t, p))
	})

	t.Run("REMOVE", func(t *testing.T) {
		fsys := createFS([]string{"file1.sb", "file2.sb", "file3.sb"})
		p := NewPoller(fsys, ".")
		_, _ = p.Add(".")

		delete(fsys, "file2.sb")
		assert.Equal(t, []Event{{Op: Remove, Name: "file2.sb"}}, scan(t, p))
		assert.NotContains(t, p.Files(), "file2.sb")
	})

	t.Run("REMOVE watched path", func(t *testing.T) {
		fsys := createFS([]string{"temp", j("temp", "file2.sb")})
		p := NewPoller(fsys, ".")
		_, _ = p.Add("temp")

		delete(fsys, j("temp", "file2.sb"))
		delete(fsys, "temp")
		assert.Equal(t, []Event{
			{Op: Remove, Name: "temp"},
			{Op: Remove, Name: j("temp", "file2.sb")},
		}, scan(t, p))
		assert.NotContains(t, p.watches, "temp")
	})

	t.Run("RENAME", func(t *testing.T) {
		fsys := createFS([]string{"file1.sb", "file2.sb"})
		p := NewPoller(fsys, ".")
		_, _ = p.Add(".")

		fsys["renamed.sb"] = fsys["file2.sb"]
		delete(fsys, "file2.sb")

		assert.Equal(t, []Event{{Op: Rename, Name: "file2.sb", NewPath: "renamed.sb"}}, scan(t, p))
		files := p.Files()
		assert.NotContains(t, files, "file2.sb")
		assert.Contains(t, files, "renamed.sb")
	})

	t.Run("WRITE", func(t *testing.T) {
		fsys := createFS([]string{"file1.sb", "file2.sb"})
		p := NewPoller(fsys, ".")
		_, _ = p.Add(".")

		fsys["file2.sb"] = &fstest.MapFile{
			Data:    []byte("file2.sb"),
			ModTime: time.Now(),
		}
		assert.Equal(t, []Event{{Op: Write, Name: "file2.sb"}}, scan(t, p))
	})
}

func TestStart(t *testing.T) {
	fsys := createFS([]string{"file.sb"})
	p := NewPoller(fsys, ".")
	_, _ = p.Add(".")

	fsys["new.sb"] = &fstest.MapFile{Data: []byte("new")}
	go func() {
		_ = p.Start(0)
	}()

	select {
	case e := <-p.Events():
		assert.Equal(t, Event{Op: Create, Name: "new.sb"}, e)
	case err := <-p.Errors():
		t.Fatal(err)
	case <-time.After(time.Second):
		t.Fatal("event was not triggered in time")
	}

	require.NoError(t, p.Close())
	select {
	case <-p.done:
	default:
		t.Error("'done' should be closed")
	}
	assert.Error(t, p.Start(0), "closed poller can't be restarted")
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "CREATE", Create.String())
	assert.Equal(t, "RENAME", Rename.String())
	assert.Equal(t, "?", Op(0).String())
}
