package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestHashCmd(t *testing.T) {
	cmd := newHashCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--width", "2", "--height", "1"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	want := "0 0 0xdc3d74f9\n1 0 0x4b85f272\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestHashCmdNearMaxInt32(t *testing.T) {
	cmd := newHashCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--x", "2147483647", "--y", "2147483647", "--width", "2", "--height", "2"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), out.String())
	}
	if want := "2147483647 2147483647 "; !strings.HasPrefix(lines[0], want) {
		t.Errorf("first line %q, want prefix %q", lines[0], want)
	}
	if want := "-2147483648 -2147483648 "; !strings.HasPrefix(lines[3], want) {
		t.Errorf("last line %q, want prefix %q", lines[3], want)
	}
}

func TestEulerCmd(t *testing.T) {
	cmd := newEulerCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--angles", "90,0,0"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(out.String(), "\n"); n != 8 {
		t.Errorf("got %d lines, want 8:\n%s", n, out.String())
	}

	bad := newEulerCmd()
	bad.SetOut(&bytes.Buffer{})
	bad.SetErr(&bytes.Buffer{})
	bad.SetArgs([]string{"--angles", "1,2"})
	if err := bad.Execute(); err == nil {
		t.Error("two angles accepted")
	}
}
