package dircmp

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/gwaghmar/examdiff/debug"
	"github.com/gwaghmar/examdiff/libdiff"

	"github.com/expr-lang/expr"
)

// ErrIO wraps filesystem failures that abort a comparison outright,
// such as an unreadable root. Failures below the roots are recorded on
// the affected entry instead.
var ErrIO = errors.New("io failure")

// FileInfo is the stat subset retained for one side of an entry.
type FileInfo struct {
	Size    int64
	ModTime time.Time
}

// Entry is one node of the merged tree. Children are ordered lexically
// by name. Left and Right are nil for the absent side.
type Entry struct {
	Name     string
	Path     string // slash-separated, relative to the roots
	IsDir    bool
	Status   Status
	Left     *FileInfo
	Right    *FileInfo
	Err      error
	Children []*Entry
}

// Stats count the classified entries of a tree. Files are always
// counted; directories only when one-sided. Newer-left and newer-right
// count as different.
type Stats struct {
	Identical int
	Different int
	LeftOnly  int
	RightOnly int
	Errors    int
}

// Tree is a completed comparison.
type Tree struct {
	Root  *Entry
	Stats Stats
}

// Walk visits every entry in depth-first, lexical order, root first.
func (t *Tree) Walk(fn func(*Entry)) {
	var visit func(*Entry)
	visit = func(e *Entry) {
		fn(e)
		for _, c := range e.Children {
			visit(c)
		}
	}
	visit(t.Root)
}

// CompareDirs compares two directories on the host filesystem.
func (c *Comparator) CompareDirs(ctx context.Context, left, right string) (*Tree, error) {
	for _, dir := range []string{left, right} {
		fi, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIO, err)
		}
		if !fi.IsDir() {
			return nil, fmt.Errorf("%w: %q is not a directory", ErrIO, dir)
		}
	}
	return c.Compare(ctx, os.DirFS(left), os.DirFS(right))
}

// Compare compares two filesystem roots. On cancellation it returns
// ctx.Err and no tree; otherwise the tree is complete and every
// per-entry failure is recorded on its entry.
func (c *Comparator) Compare(ctx context.Context, left, right fs.FS) (*Tree, error) {
	root := &Entry{Name: ".", Path: ".", IsDir: true}
	var jobs []*Entry
	if err := c.walk(ctx, left, right, root, true, &jobs); err != nil {
		return nil, err
	}
	if debug.Dir() {
		debug.Logf("dircmp: %d content jobs, mode %s\n", len(jobs), c.opts.Mode)
	}
	c.runJobs(ctx, left, right, jobs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t := &Tree{Root: root}
	aggregate(root, &t.Stats)
	return t, nil
}

// walk merges the lexically sorted listings of one directory pair and
// builds the child entries, queuing files that need content work.
func (c *Comparator) walk(ctx context.Context, left, right fs.FS, dir *Entry, isRoot bool, jobs *[]*Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	lents, lerr := fs.ReadDir(left, dir.Path)
	rents, rerr := fs.ReadDir(right, dir.Path)
	if lerr != nil || rerr != nil {
		err := errors.Join(lerr, rerr)
		if isRoot {
			return fmt.Errorf("%w: %v", ErrIO, err)
		}
		dir.Status, dir.Err = StatusError, err
		return nil
	}
	byName := func(a, b fs.DirEntry) int { return cmpString(a.Name(), b.Name()) }
	slices.SortFunc(lents, byName)
	slices.SortFunc(rents, byName)

	i, j := 0, 0
	for i < len(lents) || j < len(rents) {
		var le, re fs.DirEntry
		switch {
		case j >= len(rents) || (i < len(lents) && lents[i].Name() < rents[j].Name()):
			le, i = lents[i], i+1
		case i >= len(lents) || rents[j].Name() < lents[i].Name():
			re, j = rents[j], j+1
		default:
			le, re = lents[i], rents[j]
			i, j = i+1, j+1
		}
		name := entryName(le, re)
		p := path.Join(dir.Path, name)
		if c.skipName(name, p) {
			continue
		}
		switch {
		case le != nil && re != nil:
			if err := c.pairEntry(ctx, left, right, dir, le, re, p, jobs); err != nil {
				return err
			}
		case le != nil:
			if err := c.sideEntry(ctx, left, dir, le, p, StatusLeftOnly); err != nil {
				return err
			}
		default:
			if err := c.sideEntry(ctx, right, dir, re, p, StatusRightOnly); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Comparator) pairEntry(ctx context.Context, left, right fs.FS, dir *Entry, le, re fs.DirEntry, p string, jobs *[]*Entry) error {
	e := &Entry{Name: le.Name(), Path: p}
	if le.IsDir() && re.IsDir() {
		e.IsDir = true
		dir.Children = append(dir.Children, e)
		if c.opts.Recursive {
			return c.walk(ctx, left, right, e, false, jobs)
		}
		return nil
	}
	e.Left = sideInfo(le, e)
	e.Right = sideInfo(re, e)
	if le.IsDir() != re.IsDir() {
		// file on one side, directory on the other
		e.Status = StatusDifferent
	} else if e.Err == nil && !c.keepFile(e, p) {
		return nil
	}
	if e.Status == StatusIdentical && e.Err == nil {
		c.classify(e, jobs)
	}
	dir.Children = append(dir.Children, e)
	return nil
}

// classify resolves a paired file's status from stat data when the
// mode allows, or queues it for content comparison.
func (c *Comparator) classify(e *Entry, jobs *[]*Entry) {
	switch c.opts.Mode {
	case ModeSize:
		if e.Left.Size != e.Right.Size {
			e.Status = StatusDifferent
		}
	case ModeTimestamp:
		d := e.Left.ModTime.Sub(e.Right.ModTime)
		switch {
		case d >= -c.opts.Tolerance && d <= c.opts.Tolerance:
			e.Status = StatusIdentical
		case d > 0:
			e.Status = StatusNewerLeft
		default:
			e.Status = StatusNewerRight
		}
	default:
		*jobs = append(*jobs, e)
	}
}

// sideEntry records a one-sided entry and, for directories, its whole
// subtree with the same status.
func (c *Comparator) sideEntry(ctx context.Context, fsys fs.FS, dir *Entry, de fs.DirEntry, p string, st Status) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e := &Entry{Name: de.Name(), Path: p, IsDir: de.IsDir(), Status: st}
	fi := sideInfo(de, e)
	if st == StatusLeftOnly {
		e.Left = fi
	} else {
		e.Right = fi
	}
	if !e.IsDir && e.Err == nil && !c.keepFile(e, p) {
		return nil
	}
	dir.Children = append(dir.Children, e)
	if !e.IsDir || !c.opts.Recursive {
		return nil
	}
	subs, err := fs.ReadDir(fsys, p)
	if err != nil {
		e.Status, e.Err = StatusError, err
		return nil
	}
	slices.SortFunc(subs, func(a, b fs.DirEntry) int { return cmpString(a.Name(), b.Name()) })
	for _, de := range subs {
		cp := path.Join(p, de.Name())
		if c.skipName(de.Name(), cp) {
			continue
		}
		if err := c.sideEntry(ctx, fsys, e, de, cp, st); err != nil {
			return err
		}
	}
	return nil
}

// skipName prunes hidden and excluded entries, files and directories
// alike.
func (c *Comparator) skipName(name, p string) bool {
	if c.opts.IgnoreHidden && name[0] == '.' {
		return true
	}
	return matchAny(c.exclude, p)
}

// keepFile applies the include globs and the filter expression to a
// file entry. Filter evaluation failures are recorded on the entry,
// which is then kept.
func (c *Comparator) keepFile(e *Entry, p string) bool {
	if len(c.include) > 0 && !matchAny(c.include, p) {
		return false
	}
	if c.filter == nil {
		return true
	}
	env := map[string]any{
		"name":  e.Name,
		"path":  p,
		"ext":   path.Ext(e.Name),
		"size":  fileSize(e),
		"left":  e.Left != nil,
		"right": e.Right != nil,
	}
	keep, err := expr.Run(c.filter, env)
	if err != nil {
		e.Status, e.Err = StatusError, fmt.Errorf("filter %q: %w", c.opts.Filter, err)
		return true
	}
	return keep.(bool)
}

func fileSize(e *Entry) int64 {
	if e.Left != nil {
		return e.Left.Size
	}
	if e.Right != nil {
		return e.Right.Size
	}
	return 0
}

func sideInfo(de fs.DirEntry, e *Entry) *FileInfo {
	fi, err := de.Info()
	if err != nil {
		e.Status, e.Err = StatusError, err
		return nil
	}
	return &FileInfo{Size: fi.Size(), ModTime: fi.ModTime()}
}

func entryName(le, re fs.DirEntry) string {
	if le != nil {
		return le.Name()
	}
	return re.Name()
}

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// runJobs compares queued file pairs on a bounded pool. Workers drain
// the channel without working once the context is cancelled.
func (c *Comparator) runJobs(ctx context.Context, left, right fs.FS, jobs []*Entry) {
	if len(jobs) == 0 {
		return
	}
	n := c.opts.Workers
	if n == 0 {
		n = runtime.NumCPU()
	}
	if n > len(jobs) {
		n = len(jobs)
	}
	ch := make(chan *Entry)
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for e := range ch {
				if ctx.Err() != nil {
					continue
				}
				c.compareFile(ctx, left, right, e)
			}
		}()
	}
	for _, e := range jobs {
		ch <- e
	}
	close(ch)
	wg.Wait()
}

func (c *Comparator) compareFile(ctx context.Context, left, right fs.FS, e *Entry) {
	var same bool
	var err error
	switch c.opts.Mode {
	case ModeHash:
		same, err = c.sameHash(left, right, e.Path)
	default:
		same, err = c.sameContent(ctx, left, right, e)
	}
	switch {
	case err != nil:
		e.Status, e.Err = StatusError, err
	case !same:
		e.Status = StatusDifferent
	}
}

func (c *Comparator) sameHash(left, right fs.FS, p string) (bool, error) {
	lsum, err := hashFile(left, p)
	if err != nil {
		return false, err
	}
	rsum, err := hashFile(right, p)
	if err != nil {
		return false, err
	}
	return lsum == rsum, nil
}

func hashFile(fsys fs.FS, p string) ([sha256.Size]byte, error) {
	var sum [sha256.Size]byte
	f, err := fsys.Open(p)
	if err != nil {
		return sum, err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return sum, err
	}
	copy(sum[:], h.Sum(nil))
	return sum, nil
}

// binaryProbeLen bounds how far IsBinary looks for a NUL byte.
const binaryProbeLen = 8000

// IsBinary reports whether data looks like binary content, using the
// NUL byte probe common to diff tools.
func IsBinary(data []byte) bool {
	if len(data) > binaryProbeLen {
		data = data[:binaryProbeLen]
	}
	return bytes.IndexByte(data, 0) >= 0
}

func (c *Comparator) sameContent(ctx context.Context, left, right fs.FS, e *Entry) (bool, error) {
	if c.opts.Diff == nil {
		if e.Left.Size != e.Right.Size {
			return false, nil
		}
		return sameBytes(left, right, e.Path)
	}
	ldata, err := fs.ReadFile(left, e.Path)
	if err != nil {
		return false, err
	}
	rdata, err := fs.ReadFile(right, e.Path)
	if err != nil {
		return false, err
	}
	if IsBinary(ldata) || IsBinary(rdata) {
		return bytes.Equal(ldata, rdata), nil
	}
	res, err := libdiff.DiffContext(ctx, string(ldata), string(rdata), c.opts.Diff)
	if err != nil {
		return false, err
	}
	s := res.Stats
	return s.Added == 0 && s.Removed == 0 && s.Modified == 0, nil
}

func sameBytes(left, right fs.FS, p string) (bool, error) {
	lf, err := left.Open(p)
	if err != nil {
		return false, err
	}
	defer lf.Close()
	rf, err := right.Open(p)
	if err != nil {
		return false, err
	}
	defer rf.Close()
	lbuf := make([]byte, 32*1024)
	rbuf := make([]byte, 32*1024)
	for {
		n, lerr := io.ReadFull(lf, lbuf)
		m, rerr := io.ReadFull(rf, rbuf)
		if !bytes.Equal(lbuf[:n], rbuf[:m]) {
			return false, nil
		}
		lDone := lerr == io.EOF || lerr == io.ErrUnexpectedEOF
		rDone := rerr == io.EOF || rerr == io.ErrUnexpectedEOF
		switch {
		case lerr != nil && !lDone:
			return false, lerr
		case rerr != nil && !rDone:
			return false, rerr
		case lDone && rDone:
			return true, nil
		case lDone != rDone:
			return false, nil
		}
	}
}

// aggregate resolves directory statuses bottom-up and fills the stats.
func aggregate(e *Entry, st *Stats) {
	for _, c := range e.Children {
		aggregate(c, st)
	}
	if e.IsDir && e.Status == StatusIdentical && e.Err == nil {
		for _, c := range e.Children {
			if c.Status.Changed() {
				e.Status = StatusDifferent
				break
			}
		}
	}
	if e.Path == "." {
		return
	}
	if e.IsDir && e.Status != StatusLeftOnly && e.Status != StatusRightOnly && e.Status != StatusError {
		return
	}
	switch e.Status {
	case StatusIdentical:
		st.Identical++
	case StatusDifferent, StatusNewerLeft, StatusNewerRight:
		st.Different++
	case StatusLeftOnly:
		st.LeftOnly++
	case StatusRightOnly:
		st.RightOnly++
	case StatusError:
		st.Errors++
	}
}
