// Package lowering translates portable assembly blocks into gnu style
// extended assembly statements.
package lowering

import (
	"errors"
	"fmt"

	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/asmbridge/ast"
	"github.com/pattyshack/asmbridge/platform"
)

// ErrUnsupportedFeature is returned when an asm block requests an option
// that has no safe encoding on the target.
var ErrUnsupportedFeature = errors.New("unsupported feature")

// SymbolNamer resolves function / static item references into linker
// visible names.
type SymbolNamer interface {
	SymbolName(*ast.SymbolReference) string
}

// Lowerer lowers the asm blocks of a single source entry.  Diagnostics are
// reported to the embedded emitter.  Each lowering call is self contained;
// a Lowerer may be reused for multiple blocks, but is not safe for
// concurrent use since the emitter isn't.
type Lowerer struct {
	platform platform.Platform
	namer    SymbolNamer

	*parseutil.Emitter
}

func NewLowerer(
	target platform.Platform,
	namer SymbolNamer,
	emitter *parseutil.Emitter,
) *Lowerer {
	return &Lowerer{
		platform: target,
		namer:    namer,
		Emitter:  emitter,
	}
}

func (lowerer *Lowerer) Platform() platform.Platform {
	return lowerer.platform
}

// fail reports the error as a diagnostic and returns the error annotated
// with the location.  The returned error wraps err.
func (lowerer *Lowerer) fail(loc parseutil.Location, err error) error {
	lowerer.EmitErrors(parseutil.NewLocationError(loc, "%s", err))
	return fmt.Errorf("%s: %w", loc.ShortString(), err)
}
