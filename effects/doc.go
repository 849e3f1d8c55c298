// Package effects enumerates every primitive side effect a generator can request.
//
// An effect is plain data. It describes one operation, such as writing a file,
// running a process or asking the user a question, without performing it.
// Building an effect never does I/O and never fails; only an interpreter can fail.
//
// The set is closed: Effect is a sealed interface, so interpreters switch over
// the concrete variants exhaustively and treat an unknown variant as a bug.
//
// Three functions inspect effects without running them:
//   - Describe renders a one-line description for previews and error messages.
//   - IsWriteEffect separates mutating effects from read-only ones.
//   - AffectedPaths lists the paths an effect would change.
//
// Example:
//
//	e := effects.WriteFile{Path: "src/index.ts", Content: "export {}\n"}
//	fmt.Println(effects.Describe(e))      // write file src/index.ts (10 bytes)
//	fmt.Println(effects.IsWriteEffect(e)) // true
package effects
