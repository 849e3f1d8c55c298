package effects

import effectmodel "github.com/on-the-ground/effect_ive_gen/effects/model"

const (
	KindReadFile        = effectmodel.KindReadFile
	KindWriteFile       = effectmodel.KindWriteFile
	KindAppendFile      = effectmodel.KindAppendFile
	KindExists          = effectmodel.KindExists
	KindGlob            = effectmodel.KindGlob
	KindCopyFile        = effectmodel.KindCopyFile
	KindCopyDirectory   = effectmodel.KindCopyDirectory
	KindDeleteFile      = effectmodel.KindDeleteFile
	KindDeleteDirectory = effectmodel.KindDeleteDirectory
	KindMakeDir         = effectmodel.KindMakeDir
	KindExec            = effectmodel.KindExec
	KindPrompt          = effectmodel.KindPrompt
	KindLog             = effectmodel.KindLog
	KindReadContext     = effectmodel.KindReadContext
	KindWriteContext    = effectmodel.KindWriteContext
	KindParallel        = effectmodel.KindParallel
	KindRace            = effectmodel.KindRace
	KindSleep           = effectmodel.KindSleep
)

const (
	PromptText        = effectmodel.PromptText
	PromptConfirm     = effectmodel.PromptConfirm
	PromptSelect      = effectmodel.PromptSelect
	PromptMultiselect = effectmodel.PromptMultiselect
)
