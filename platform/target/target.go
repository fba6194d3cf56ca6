package target

import (
	"fmt"

	"github.com/pattyshack/asmbridge/architecture"
	"github.com/pattyshack/asmbridge/platform"
	"github.com/pattyshack/asmbridge/platform/aarch64"
	"github.com/pattyshack/asmbridge/platform/generic"
	"github.com/pattyshack/asmbridge/platform/riscv"
	"github.com/pattyshack/asmbridge/platform/x86"
)

// New returns the platform for the named architecture (aliases such as
// "amd64" are accepted) with the given target features enabled.
func New(
	name string,
	features ...architecture.Feature,
) (
	platform.Platform,
	error,
) {
	arch, ok := architecture.ParseName(name)
	if !ok {
		return nil, fmt.Errorf("unknown architecture (%s)", name)
	}

	featureSet := architecture.NewFeatureSet(features...)

	switch arch.Family() {
	case architecture.X86Family:
		return x86.NewPlatform(arch, featureSet), nil
	case architecture.AArch64Family:
		return aarch64.NewPlatform(featureSet), nil
	case architecture.RiscVFamily:
		return riscv.NewPlatform(arch, featureSet), nil
	case architecture.SpirVFamily:
		return nil, fmt.Errorf("inline assembly is not supported on %s", arch)
	default:
		return generic.NewPlatform(arch, featureSet), nil
	}
}
