package interpreter

import (
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"
	memdb "github.com/hashicorp/go-memdb"
)

const (
	entryTable  = "entry"
	entryIndex  = "id"
	entryPrefix = entryIndex + "_prefix"
)

var (
	errIsDir  = errors.New("is a directory")
	errNotDir = errors.New("not a directory")
)

// entry is one file or directory of the virtual filesystem.
type entry struct {
	Path     string
	Dir      bool
	Content  string
	Checksum uint64
}

func vfsSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			entryTable: {
				Name: entryTable,
				Indexes: map[string]*memdb.IndexSchema{
					entryIndex: {
						Name:    entryIndex,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "Path"},
					},
				},
			},
		},
	}
}

// virtualFS is the in-memory filesystem a dry run reads and writes.
// Paths are slash-separated and cleaned; the current directory "." always exists.
type virtualFS struct {
	db *memdb.MemDB
}

func newVirtualFS(seed map[string]string) (*virtualFS, error) {
	db, err := memdb.NewMemDB(vfsSchema())
	if err != nil {
		return nil, err
	}
	v := &virtualFS{db: db}
	for p, content := range seed {
		if err := v.write(p, content, false); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func cleanPath(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

func isRoot(p string) bool {
	return p == "." || p == "/"
}

// childPrefix is the prefix every entry below dir starts with.
func childPrefix(dir string) string {
	switch dir {
	case ".":
		return ""
	case "/":
		return "/"
	default:
		return dir + "/"
	}
}

func lookup(txn *memdb.Txn, p string) (*entry, error) {
	raw, err := txn.First(entryTable, entryIndex, p)
	if err != nil || raw == nil {
		return nil, err
	}
	return raw.(*entry), nil
}

func below(txn *memdb.Txn, dir string) ([]*entry, error) {
	it, err := txn.Get(entryTable, entryPrefix, childPrefix(dir))
	if err != nil {
		return nil, err
	}
	var out []*entry
	for raw := it.Next(); raw != nil; raw = it.Next() {
		out = append(out, raw.(*entry))
	}
	return out, nil
}

// ensureDir creates p and its missing ancestors as directories.
func ensureDir(txn *memdb.Txn, p string) error {
	if isRoot(p) {
		return nil
	}
	if err := ensureDir(txn, path.Dir(p)); err != nil {
		return err
	}
	existing, err := lookup(txn, p)
	if err != nil {
		return err
	}
	if existing != nil {
		if !existing.Dir {
			return &fs.PathError{Op: "mkdir", Path: p, Err: errNotDir}
		}
		return nil
	}
	return txn.Insert(entryTable, &entry{Path: p, Dir: true})
}

func putFile(txn *memdb.Txn, p, content string) error {
	if isRoot(p) {
		return &fs.PathError{Op: "write", Path: p, Err: errIsDir}
	}
	if err := ensureDir(txn, path.Dir(p)); err != nil {
		return err
	}
	return txn.Insert(entryTable, &entry{Path: p, Content: content, Checksum: xxhash.Sum64String(content)})
}

func (v *virtualFS) write(p, content string, appendMode bool) error {
	p = cleanPath(p)
	txn := v.db.Txn(true)
	defer txn.Abort()

	existing, err := lookup(txn, p)
	if err != nil {
		return err
	}
	if existing != nil && existing.Dir {
		return &fs.PathError{Op: "write", Path: p, Err: errIsDir}
	}
	if appendMode && existing != nil {
		content = existing.Content + content
	}
	if err := putFile(txn, p, content); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

func (v *virtualFS) read(p string) (string, error) {
	p = cleanPath(p)
	txn := v.db.Txn(false)
	defer txn.Abort()

	e, err := lookup(txn, p)
	switch {
	case err != nil:
		return "", err
	case e == nil && isRoot(p), e != nil && e.Dir:
		return "", &fs.PathError{Op: "read", Path: p, Err: errIsDir}
	case e == nil:
		return "", &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	return e.Content, nil
}

func (v *virtualFS) exists(p string) (bool, error) {
	p = cleanPath(p)
	if isRoot(p) {
		return true, nil
	}
	txn := v.db.Txn(false)
	defer txn.Abort()
	e, err := lookup(txn, p)
	return e != nil, err
}

func (v *virtualFS) mkdir(p string) error {
	txn := v.db.Txn(true)
	defer txn.Abort()
	if err := ensureDir(txn, cleanPath(p)); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

// deleteFile removes a file. A missing file is not an error.
func (v *virtualFS) deleteFile(p string) (bool, error) {
	p = cleanPath(p)
	txn := v.db.Txn(true)
	defer txn.Abort()

	e, err := lookup(txn, p)
	switch {
	case err != nil:
		return false, err
	case e == nil && isRoot(p), e != nil && e.Dir:
		return false, &fs.PathError{Op: "remove", Path: p, Err: errIsDir}
	case e == nil:
		return false, nil
	}
	if err := txn.Delete(entryTable, e); err != nil {
		return false, err
	}
	txn.Commit()
	return true, nil
}

// deleteDirectory removes p and everything below it, returning the files removed.
func (v *virtualFS) deleteDirectory(p string) ([]string, error) {
	p = cleanPath(p)
	txn := v.db.Txn(true)
	defer txn.Abort()

	children, err := below(txn, p)
	if err != nil {
		return nil, err
	}
	self, err := lookup(txn, p)
	if err != nil {
		return nil, err
	}
	if self != nil {
		children = append(children, self)
	}

	var removed []string
	for _, e := range children {
		if !e.Dir {
			removed = append(removed, e.Path)
		}
		if err := txn.Delete(entryTable, e); err != nil {
			return nil, err
		}
	}
	txn.Commit()
	slices.Sort(removed)
	return removed, nil
}

func (v *virtualFS) copyFile(src, dest string) error {
	content, err := v.read(src)
	if err != nil {
		return err
	}
	return v.write(dest, content, false)
}

// copyDirectory copies everything below src into dest, returning the files written.
func (v *virtualFS) copyDirectory(src, dest string) ([]string, error) {
	src, dest = cleanPath(src), cleanPath(dest)
	txn := v.db.Txn(true)
	defer txn.Abort()

	if !isRoot(src) {
		self, err := lookup(txn, src)
		switch {
		case err != nil:
			return nil, err
		case self == nil:
			return nil, &fs.PathError{Op: "stat", Path: src, Err: fs.ErrNotExist}
		case !self.Dir:
			return nil, &fs.PathError{Op: "copy", Path: src, Err: errNotDir}
		}
	}

	// Snapshot first: the destination may lie below the source.
	children, err := below(txn, src)
	if err != nil {
		return nil, err
	}
	if err := ensureDir(txn, dest); err != nil {
		return nil, err
	}

	prefix := childPrefix(src)
	var written []string
	for _, e := range children {
		target := path.Join(dest, strings.TrimPrefix(e.Path, prefix))
		if e.Dir {
			err = ensureDir(txn, target)
		} else {
			err = putFile(txn, target, e.Content)
			written = append(written, target)
		}
		if err != nil {
			return nil, err
		}
	}
	txn.Commit()
	slices.Sort(written)
	return written, nil
}

// glob matches files below cwd and returns their paths relative to cwd, sorted.
// Absolute patterns match absolute paths.
func (v *virtualFS) glob(pattern, cwd string) ([]string, error) {
	pattern = filepath.ToSlash(pattern)
	if !doublestar.ValidatePattern(pattern) {
		return nil, doublestar.ErrBadPattern
	}
	base := cleanPath(cwd)
	if path.IsAbs(pattern) {
		base = "/"
	}

	txn := v.db.Txn(false)
	defer txn.Abort()
	entries, err := below(txn, base)
	if err != nil {
		return nil, err
	}

	prefix := childPrefix(base)
	if path.IsAbs(pattern) {
		prefix = ""
	}
	matches := []string{}
	for _, e := range entries {
		if e.Dir || (base == "." && path.IsAbs(e.Path)) {
			continue
		}
		rel := strings.TrimPrefix(e.Path, prefix)
		if doublestar.MatchUnvalidated(pattern, rel) {
			matches = append(matches, rel)
		}
	}
	slices.Sort(matches)
	return matches, nil
}

// files returns every file with its content and the xxhash of that content.
func (v *virtualFS) files() (map[string]string, map[string]uint64) {
	txn := v.db.Txn(false)
	defer txn.Abort()
	entries, err := below(txn, ".")
	if err != nil {
		return map[string]string{}, map[string]uint64{}
	}
	contents := make(map[string]string, len(entries))
	digests := make(map[string]uint64, len(entries))
	for _, e := range entries {
		if !e.Dir {
			contents[e.Path] = e.Content
			digests[e.Path] = e.Checksum
		}
	}
	return contents, digests
}
