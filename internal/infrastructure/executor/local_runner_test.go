package executor

import (
	"context"
	"runtime"
	"testing"
	"time"
)

func TestLocalRunnerReportsExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX sh")
	}
	runner := NewLocalRunner()

	result, err := runner.Run(context.Background(), "sh", "-c", "echo out; echo err >&2; exit 3")
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if result.ExitCode != 3 {
		t.Fatalf("expected exit code 3, got %d", result.ExitCode)
	}
	if result.Stdout != "out\n" || result.Stderr != "err\n" {
		t.Fatalf("unexpected output %+v", result)
	}
}

func TestLocalRunnerSuccess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX sh")
	}
	result, err := NewLocalRunner("AXIOM_TEST_VALUE=42").Run(context.Background(), "sh", "-c", "echo $AXIOM_TEST_VALUE")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if result.ExitCode != 0 || result.Stdout != "42\n" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestLocalRunnerTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX sleep")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	result, err := NewLocalRunner().Run(ctx, "sleep", "5")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !result.TimedOut {
		t.Fatalf("expected TimedOut, got %+v", result)
	}
}
