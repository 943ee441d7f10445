package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// testEnv returns an Environment with captured output and the given
// variables instead of the process environment.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Stdout: &stdout,
		Stderr: &stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
		Styles: func() []string { return []string{"default", "notebook"} },
	}
	return env, &stdout, &stderr
}

// writeFile creates dir/name with content, making parent directories.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

const halfPage = "# Halves\n\nOne half:\n\n~~~equation\n" +
	"- text: \"\\uFDD0\"\n  object: {type: fraction, args: 2}\n" +
	"- text: \"1\"\n" +
	"- text: \"\\uFDEE\"\n  object: {type: fraction, args: 2}\n" +
	"- text: \"2\"\n" +
	"- text: \"\\uFDEF\"\n  object: {type: fraction, args: 2}\n" +
	"~~~\n"

// radicalSegments is the cube root of x.
const radicalSegments = "- text: \"\\uFDD0\"\n  object: {type: radical, args: 2}\n" +
	"- text: \"3\"\n" +
	"- text: \"\\uFDEE\"\n  object: {type: radical, args: 2}\n" +
	"- text: \"x\"\n" +
	"- text: \"\\uFDEF\"\n  object: {type: radical, args: 2}\n"
