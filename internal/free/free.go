// Package free holds the untyped task tree shared by the task package and the
// interpreters. A tree is one of Pure, Fail or Suspend; it is immutable and
// performs nothing until an interpreter walks it.
package free

import (
	"fmt"

	"github.com/on-the-ground/effect_ive_gen/effects"
)

// Node is a sealed interface over Pure, Fail and Suspend.
type Node interface {
	effects.Program
	sealedNode()
}

var (
	_ Node = Pure{}
	_ Node = Fail{}
	_ Node = Suspend{}
)

// Pure is a settled success.
type Pure struct {
	Value any
}

func (Pure) PendingEffect() effects.Effect { return nil }
func (Pure) sealedNode()                   {}

// Fail is a settled failure.
type Fail struct {
	Err error
}

func (Fail) PendingEffect() effects.Effect { return nil }
func (Fail) sealedNode()                   {}

// Suspend waits for an interpreter to perform Effect and feed the outcome to Resume.
// Resume receives either the effect's result or the error it failed with.
type Suspend struct {
	Effect effects.Effect
	Resume func(value any, err error) Node
}

func (s Suspend) PendingEffect() effects.Effect { return s.Effect }
func (Suspend) sealedNode()                     {}

// Settle is the default continuation: a failed effect fails the tree,
// a successful one yields its result.
func Settle(value any, err error) Node {
	if err != nil {
		return Fail{Err: err}
	}
	return Pure{Value: value}
}

// Perform suspends on e with the default continuation.
func Perform(e effects.Effect) Node {
	return Suspend{Effect: e, Resume: Settle}
}

// Bind sequences n with k. Failures skip k.
func Bind(n Node, k func(any) Node) Node {
	switch n := n.(type) {
	case Pure:
		return k(n.Value)
	case Fail:
		return n
	case Suspend:
		return Suspend{
			Effect: n.Effect,
			Resume: func(value any, err error) Node {
				return Bind(n.Resume(value, err), k)
			},
		}
	default:
		panic(fmt.Sprintf("unrecognized task node: %T", n))
	}
}

// Catch hands any failure of n, including one raised while interpreting
// a pending effect, to h.
func Catch(n Node, h func(error) Node) Node {
	switch n := n.(type) {
	case Pure:
		return n
	case Fail:
		return h(n.Err)
	case Suspend:
		return Suspend{
			Effect: n.Effect,
			Resume: func(value any, err error) Node {
				return Catch(n.Resume(value, err), h)
			},
		}
	default:
		panic(fmt.Sprintf("unrecognized task node: %T", n))
	}
}
