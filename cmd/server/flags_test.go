package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() failed: %v", err)
	}
	os.Stdout = writer
	defer func() {
		os.Stdout = oldStdout
	}()

	fn()

	if err := writer.Close(); err != nil {
		t.Fatalf("writer.Close() failed: %v", err)
	}

	var buffer bytes.Buffer
	if _, err := io.Copy(&buffer, reader); err != nil {
		t.Fatalf("io.Copy() failed: %v", err)
	}
	if err := reader.Close(); err != nil {
		t.Fatalf("reader.Close() failed: %v", err)
	}

	return buffer.String()
}

func TestPrintDiagnoseShowsEffectiveLogDir(t *testing.T) {
	output := captureStdout(t, printDiagnose)
	if !strings.Contains(output, "path.effective_log_dir:") {
		t.Fatalf("printDiagnose() output missing effective log dir: %s", output)
	}
}

func TestPrintDiagnoseShowsDBPath(t *testing.T) {
	output := captureStdout(t, printDiagnose)
	if !strings.Contains(output, "path.db:") {
		t.Fatalf("printDiagnose() output missing db path: %s", output)
	}
}

func TestHandleFlagsVersion(t *testing.T) {
	var handled bool
	var code int
	output := captureStdout(t, func() {
		handled, code = handleFlags([]string{"-version"})
	})
	if !handled || code != 0 {
		t.Fatalf("handleFlags(-version) = (%t, %d), want (true, 0)", handled, code)
	}
	if !strings.Contains(output, "version: dev") {
		t.Fatalf("version output = %q", output)
	}
}

func TestHandleFlagsNone(t *testing.T) {
	handled, code := handleFlags(nil)
	if handled || code != 0 {
		t.Fatalf("handleFlags(nil) = (%t, %d), want (false, 0)", handled, code)
	}
}

func TestHandleFlagsUnknown(t *testing.T) {
	handled, code := handleFlags([]string{"-bogus"})
	if !handled || code != 2 {
		t.Fatalf("handleFlags(-bogus) = (%t, %d), want (true, 2)", handled, code)
	}
}
