// Package cpucaps reports which vector instruction tiers the host supports.
//
// The transform and hash packages produce identical results on every tier;
// the report only tells callers which specialised implementations they may
// select and is logged by the commands at start-up.
package cpucaps

import (
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// Tier is a vector instruction level, ordered from least to most capable.
type Tier int

const (
	TierScalar Tier = iota
	TierSSE2
	TierSSE3
	TierSSE41
	TierAVX2
)

var tierNames = [...]string{
	TierScalar: "scalar",
	TierSSE2:   "sse2",
	TierSSE3:   "sse3",
	TierSSE41:  "sse4.1",
	TierAVX2:   "avx2",
}

func (t Tier) String() string {
	if t < 0 || int(t) >= len(tierNames) {
		return "unknown"
	}
	return tierNames[t]
}

// Caps is the set of supported tiers. Scalar is always present.
type Caps struct {
	Arch  string
	tiers uint8
}

// Detect reads the host's feature flags. Only 386 and amd64 report vector
// tiers.
func Detect() Caps {
	return fromFlags(runtime.GOARCH, cpu.X86.HasSSE2, cpu.X86.HasSSE3, cpu.X86.HasSSE41, cpu.X86.HasAVX2)
}

func fromFlags(arch string, sse2, sse3, sse41, avx2 bool) Caps {
	c := Caps{Arch: arch, tiers: 1 << TierScalar}
	if arch != "amd64" && arch != "386" {
		return c
	}
	// Each tier requires the ones below it.
	for _, f := range []struct {
		ok   bool
		tier Tier
	}{{sse2, TierSSE2}, {sse3, TierSSE3}, {sse41, TierSSE41}, {avx2, TierAVX2}} {
		if !f.ok {
			break
		}
		c.tiers |= 1 << f.tier
	}
	return c
}

// Has reports whether t is supported.
func (c Caps) Has(t Tier) bool {
	if t < 0 || int(t) >= len(tierNames) {
		return false
	}
	return c.tiers&(1<<t) != 0
}

// Best returns the most capable supported tier.
func (c Caps) Best() Tier {
	best := TierScalar
	for t := TierScalar; int(t) < len(tierNames); t++ {
		if c.Has(t) {
			best = t
		}
	}
	return best
}

func (c Caps) String() string {
	var names []string
	for t := TierScalar; int(t) < len(tierNames); t++ {
		if c.Has(t) {
			names = append(names, t.String())
		}
	}
	return c.Arch + "[" + strings.Join(names, ",") + "]"
}
