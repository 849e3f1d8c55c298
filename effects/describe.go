package effects

import (
	"fmt"
	"strings"
)

// Describe renders a human-readable, single-line description of e.
// Previews and error messages rely on it.
func Describe(e Effect) string {
	switch e := e.(type) {
	case ReadFile:
		return fmt.Sprintf("read file %s", e.Path)
	case WriteFile:
		return fmt.Sprintf("write file %s (%d bytes)", e.Path, len(e.Content))
	case AppendFile:
		return fmt.Sprintf("append to file %s (%d bytes)", e.Path, len(e.Content))
	case Exists:
		return fmt.Sprintf("check if %s exists", e.Path)
	case Glob:
		if e.Cwd == "" {
			return fmt.Sprintf("glob %s", e.Pattern)
		}
		return fmt.Sprintf("glob %s in %s", e.Pattern, e.Cwd)
	case CopyFile:
		return fmt.Sprintf("copy file %s to %s", e.Src, e.Dest)
	case CopyDirectory:
		return fmt.Sprintf("copy directory %s to %s", e.Src, e.Dest)
	case DeleteFile:
		return fmt.Sprintf("delete file %s", e.Path)
	case DeleteDirectory:
		return fmt.Sprintf("delete directory %s", e.Path)
	case MakeDir:
		return fmt.Sprintf("create directory %s", e.Path)
	case Exec:
		cmd := strings.TrimSpace(strings.Join(append([]string{e.Command}, e.Args...), " "))
		if e.Cwd == "" {
			return fmt.Sprintf("exec %s", cmd)
		}
		return fmt.Sprintf("exec %s in %s", cmd, e.Cwd)
	case Prompt:
		return fmt.Sprintf("prompt %s (%s): %s", e.Name, e.Type, e.Message)
	case Log:
		return fmt.Sprintf("log [%s] %s", e.Level, e.Message)
	case ReadContext:
		return fmt.Sprintf("read context %s", e.Key)
	case WriteContext:
		if e.Delete {
			return fmt.Sprintf("delete context %s", e.Key)
		}
		return fmt.Sprintf("write context %s = %v", e.Key, e.Value)
	case Parallel:
		if e.Limit > 0 && e.Limit < len(e.Tasks) {
			return fmt.Sprintf("run %d tasks in parallel (at most %d at a time)", len(e.Tasks), e.Limit)
		}
		return fmt.Sprintf("run %d tasks in parallel", len(e.Tasks))
	case Race:
		return fmt.Sprintf("race %d tasks", len(e.Tasks))
	case Sleep:
		return fmt.Sprintf("sleep %s", e.Duration)
	default:
		// Effect is sealed, reaching here is a bug.
		panic(fmt.Sprintf("unrecognized effect: %T", e))
	}
}

// IsWriteEffect reports whether e mutates the filesystem or the outside world.
func IsWriteEffect(e Effect) bool {
	switch e.(type) {
	case WriteFile, AppendFile, CopyFile, CopyDirectory, DeleteFile, DeleteDirectory, MakeDir, Exec:
		return true
	case ReadFile, Exists, Glob, Prompt, Log, ReadContext, WriteContext, Parallel, Race, Sleep:
		return false
	default:
		panic(fmt.Sprintf("unrecognized effect: %T", e))
	}
}

// AffectedPaths returns the paths e would change, in a stable order.
// Read-only effects affect nothing. Exec reports its working directory
// because a process may touch anything under it.
func AffectedPaths(e Effect) []string {
	switch e := e.(type) {
	case WriteFile:
		return []string{e.Path}
	case AppendFile:
		return []string{e.Path}
	case CopyFile:
		return []string{e.Dest}
	case CopyDirectory:
		return []string{e.Dest}
	case DeleteFile:
		return []string{e.Path}
	case DeleteDirectory:
		return []string{e.Path}
	case MakeDir:
		return []string{e.Path}
	case Exec:
		if e.Cwd == "" {
			return nil
		}
		return []string{e.Cwd}
	case ReadFile, Exists, Glob, Prompt, Log, ReadContext, WriteContext, Parallel, Race, Sleep:
		return nil
	default:
		panic(fmt.Sprintf("unrecognized effect: %T", e))
	}
}
