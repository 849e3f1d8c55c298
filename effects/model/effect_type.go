package effectmodel

// Kind names one variant of the closed effect set.
type Kind string

const (
	KindReadFile        Kind = "read_file"
	KindWriteFile       Kind = "write_file"
	KindAppendFile      Kind = "append_file"
	KindExists          Kind = "exists"
	KindGlob            Kind = "glob"
	KindCopyFile        Kind = "copy_file"
	KindCopyDirectory   Kind = "copy_directory"
	KindDeleteFile      Kind = "delete_file"
	KindDeleteDirectory Kind = "delete_directory"
	KindMakeDir         Kind = "make_dir"
	KindExec            Kind = "exec"
	KindPrompt          Kind = "prompt"
	KindLog             Kind = "log"
	KindReadContext     Kind = "read_context"
	KindWriteContext    Kind = "write_context"
	KindParallel        Kind = "parallel"
	KindRace            Kind = "race"
	KindSleep           Kind = "sleep"
)

// AllKinds lists every variant in declaration order.
var AllKinds = []Kind{
	KindReadFile,
	KindWriteFile,
	KindAppendFile,
	KindExists,
	KindGlob,
	KindCopyFile,
	KindCopyDirectory,
	KindDeleteFile,
	KindDeleteDirectory,
	KindMakeDir,
	KindExec,
	KindPrompt,
	KindLog,
	KindReadContext,
	KindWriteContext,
	KindParallel,
	KindRace,
	KindSleep,
}

// PromptType is the kind of answer a prompt collects.
type PromptType string

const (
	PromptText        PromptType = "text"
	PromptConfirm     PromptType = "confirm"
	PromptSelect      PromptType = "select"
	PromptMultiselect PromptType = "multiselect"
)

// Valid reports whether t is one of the four prompt types.
func (t PromptType) Valid() bool {
	switch t {
	case PromptText, PromptConfirm, PromptSelect, PromptMultiselect:
		return true
	default:
		return false
	}
}
