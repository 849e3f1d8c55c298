package task

import (
	"slices"
	"strings"

	"github.com/on-the-ground/effect_ive_gen/effects"
)

// ReadFile reads the file at path as text.
func ReadFile(path string) Task[string] {
	if t, ok := validated[string]("readFile", requirePath("path", path)); !ok {
		return t
	}
	return perform[string](effects.ReadFile{Path: path})
}

// WriteFile replaces the content of the file at path, creating parent directories.
func WriteFile(path, content string) Task[Unit] {
	if t, ok := validated[Unit]("writeFile", requirePath("path", path)); !ok {
		return t
	}
	return Void(FromEffect(effects.WriteFile{Path: path, Content: content}))
}

// AppendFile appends content to the file at path, creating it when absent.
func AppendFile(path, content string) Task[Unit] {
	if t, ok := validated[Unit]("appendFile", requirePath("path", path)); !ok {
		return t
	}
	return Void(FromEffect(effects.AppendFile{Path: path, Content: content}))
}

// Mkdir creates the directory at path along with any missing parents.
func Mkdir(path string) Task[Unit] {
	if t, ok := validated[Unit]("mkdir", requirePath("path", path)); !ok {
		return t
	}
	return Void(FromEffect(effects.MakeDir{Path: path}))
}

// Exists reports whether a file or directory is present at path.
func Exists(path string) Task[bool] {
	if t, ok := validated[bool]("exists", requirePath("path", path)); !ok {
		return t
	}
	return perform[bool](effects.Exists{Path: path})
}

// Glob lists the files under cwd matching pattern, sorted. An empty cwd means
// the interpreter's base directory. Patterns support "**".
func Glob(pattern, cwd string) Task[[]string] {
	if t, ok := validated[[]string]("glob", requireNonEmpty("pattern", pattern)); !ok {
		return t
	}
	return perform[[]string](effects.Glob{Pattern: pattern, Cwd: cwd})
}

// CopyFile copies the file at src to dest, creating parent directories.
func CopyFile(src, dest string) Task[Unit] {
	if t, ok := validated[Unit]("copyFile", requirePath("src", src), requirePath("dest", dest)); !ok {
		return t
	}
	return Void(FromEffect(effects.CopyFile{Src: src, Dest: dest}))
}

// CopyDirectory copies the tree rooted at src to dest.
func CopyDirectory(src, dest string) Task[Unit] {
	if t, ok := validated[Unit]("copyDirectory", requirePath("src", src), requirePath("dest", dest)); !ok {
		return t
	}
	return Void(FromEffect(effects.CopyDirectory{Src: src, Dest: dest}))
}

// DeleteFile removes the file at path.
func DeleteFile(path string) Task[Unit] {
	if t, ok := validated[Unit]("deleteFile", requirePath("path", path)); !ok {
		return t
	}
	return Void(FromEffect(effects.DeleteFile{Path: path}))
}

// DeleteDirectory removes the tree rooted at path.
func DeleteDirectory(path string) Task[Unit] {
	if t, ok := validated[Unit]("deleteDirectory", requirePath("path", path)); !ok {
		return t
	}
	return Void(FromEffect(effects.DeleteDirectory{Path: path}))
}

// SortFileLines sorts the lines of the file at path in place.
// Blank lines are dropped and a trailing newline is kept if there was one.
func SortFileLines(path string) Task[Unit] {
	if t, ok := validated[Unit]("sortFileLines", requirePath("path", path)); !ok {
		return t
	}
	return FlatMap(ReadFile(path), func(content string) Task[Unit] {
		return WriteFile(path, sortLines(content))
	})
}

func sortLines(content string) string {
	lines := make([]string, 0, strings.Count(content, "\n")+1)
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	slices.Sort(lines)
	sorted := strings.Join(lines, "\n")
	if strings.HasSuffix(content, "\n") && sorted != "" {
		sorted += "\n"
	}
	return sorted
}
