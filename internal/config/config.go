// Package config holds the handful of process-level knobs the spec's
// process interface exposes (§6), validated once at construction so
// illegal combinations fail before any query runs.
package config

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/kushdb/kushdb-go/internal/kerrors"
)

// Backend selects the native-code backend the translator targets.
// Both values are external collaborators (spec.md §1); the core only
// needs to know which one was requested so it can reject lowering
// requests the chosen backend can't satisfy.
type Backend string

const (
	BackendASM  Backend = "asm"
	BackendLLVM Backend = "llvm"
)

// RegAlloc selects the register allocator used by the asm backend.
type RegAlloc string

const (
	RegAllocStackSpill RegAlloc = "stack_spill"
	RegAllocLinearScan RegAlloc = "linear_scan"
)

// SkinnerMode selects how the adaptive join re-executes a permutation.
type SkinnerMode string

const (
	SkinnerRecompile SkinnerMode = "recompile"
	SkinnerPermute   SkinnerMode = "permute"
)

// EngineConfig is the process-wide configuration built from CLI flags
// or programmatic defaults.
type EngineConfig struct {
	Backend          Backend
	RegAlloc         RegAlloc
	Skinner          SkinnerMode
	BudgetPerEpisode int
}

// Default returns the engine's default configuration: the interpreted
// "permute" skinner mode (no recompilation), asm backend with
// stack-spill allocation, and the spec's default episode budget of
// 10,000 tuples.
func Default() EngineConfig {
	return EngineConfig{
		Backend:          BackendASM,
		RegAlloc:         RegAllocStackSpill,
		Skinner:          SkinnerPermute,
		BudgetPerEpisode: 10_000,
	}
}

// Validate rejects combinations the spec calls out as nonsensical,
// e.g. a register allocator choice under the llvm backend, which
// never consults one.
func (c EngineConfig) Validate() error {
	switch c.Backend {
	case BackendASM, BackendLLVM:
	default:
		return kerrors.TypeMismatch.New(fmt.Sprintf("unknown backend %q", c.Backend))
	}
	if c.Backend == BackendLLVM && c.RegAlloc != "" {
		return errors.Wrap(
			kerrors.TypeMismatch.New("reg_alloc is only meaningful for the asm backend"),
			"validating engine config",
		)
	}
	switch c.Skinner {
	case SkinnerRecompile, SkinnerPermute:
	default:
		return kerrors.TypeMismatch.New(fmt.Sprintf("unknown skinner mode %q", c.Skinner))
	}
	if c.BudgetPerEpisode <= 0 {
		return kerrors.TypeMismatch.New("budget_per_episode must be positive")
	}
	return nil
}
