package cpucaps

import "testing"

func TestFromFlags(t *testing.T) {
	tests := []struct {
		name                    string
		arch                    string
		sse2, sse3, sse41, avx2 bool
		best                    Tier
		str                     string
	}{
		{"arm64 ignores flags", "arm64", true, true, true, true, TierScalar, "arm64[scalar]"},
		{"amd64 full", "amd64", true, true, true, true, TierAVX2, "amd64[scalar,sse2,sse3,sse4.1,avx2]"},
		{"amd64 sse3", "amd64", true, true, false, true, TierSSE3, "amd64[scalar,sse2,sse3]"},
		{"386 none", "386", false, true, true, true, TierScalar, "386[scalar]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := fromFlags(tt.arch, tt.sse2, tt.sse3, tt.sse41, tt.avx2)
			if got := c.Best(); got != tt.best {
				t.Errorf("Best = %v, want %v", got, tt.best)
			}
			if got := c.String(); got != tt.str {
				t.Errorf("String = %q, want %q", got, tt.str)
			}
			if !c.Has(TierScalar) {
				t.Error("scalar tier missing")
			}
		})
	}
}

func TestDetectAlwaysScalar(t *testing.T) {
	c := Detect()
	if !c.Has(TierScalar) {
		t.Fatal("scalar tier missing")
	}
	if c.Has(Tier(42)) || Tier(42).String() != "unknown" {
		t.Error("out-of-range tier reported")
	}
}
