package ptyio

import (
	"io"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestOpen_EchoCommand(t *testing.T) {
	p, err := Open(Options{Command: "echo hello", Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer p.Close()

	buf := make([]byte, 1024)
	var output strings.Builder
	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for output, got: %q", output.String())
		default:
		}
		n, err := p.Read(buf)
		if n > 0 {
			output.Write(buf[:n])
		}
		if strings.Contains(output.String(), "hello") {
			return
		}
		if err != nil {
			break
		}
	}
	if !strings.Contains(output.String(), "hello") {
		t.Errorf("expected output to contain 'hello', got %q", output.String())
	}
}

func TestOpen_WithSize(t *testing.T) {
	p, err := Open(Options{Command: "echo sized", Dir: t.TempDir(), Rows: 24, Cols: 80})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer p.Close()
}

func TestOpen_ZeroDimensions(t *testing.T) {
	p, err := Open(Options{Command: "echo zero", Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open with zero dimensions failed: %v", err)
	}
	defer p.Close()
}

func TestPty_SendBytes(t *testing.T) {
	p, err := Open(Options{Command: "cat", Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer p.Close()

	n, err := p.SendBytes([]byte("test input\n"))
	if err != nil {
		t.Fatalf("SendBytes failed: %v", err)
	}
	if n != 11 {
		t.Errorf("expected 11 bytes written, got %d", n)
	}
}

func TestPty_SendBytesAfterClose(t *testing.T) {
	p, err := Open(Options{Command: "cat", Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	p.Close()

	_, err = p.SendBytes([]byte("data"))
	if err != io.ErrClosedPipe {
		t.Errorf("expected io.ErrClosedPipe after close, got %v", err)
	}
}

func TestPty_ReadAfterClose(t *testing.T) {
	p, err := Open(Options{Command: "cat", Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	p.Close()

	buf := make([]byte, 64)
	_, err = p.Read(buf)
	if err != io.EOF {
		t.Errorf("expected io.EOF after close, got %v", err)
	}
}

func TestPty_SetSize(t *testing.T) {
	p, err := Open(Options{Command: "cat", Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer p.Close()

	if err := p.SetSize(40, 120); err != nil {
		t.Errorf("SetSize failed: %v", err)
	}
}

func TestPty_SetSizeAfterClose(t *testing.T) {
	p, err := Open(Options{Command: "cat", Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	p.Close()

	if err := p.SetSize(40, 120); err != nil {
		t.Errorf("SetSize on closed Pty should return nil, got %v", err)
	}
}

func TestPty_Running(t *testing.T) {
	p, err := Open(Options{Command: "sleep 10", Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer p.Close()

	if !p.Running() {
		t.Error("expected pty to be running")
	}
}

func TestPty_RunningAfterClose(t *testing.T) {
	p, err := Open(Options{Command: "sleep 10", Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	p.Close()

	if p.Running() {
		t.Error("expected pty not to be running after close")
	}
}

func TestPty_CloseIdempotent(t *testing.T) {
	p, err := Open(Options{Command: "cat", Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if err := p.Close(); err != nil {
		t.Errorf("first Close failed: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}

func TestPty_File(t *testing.T) {
	p, err := Open(Options{Command: "cat", Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer p.Close()

	if p.File() == nil {
		t.Error("File() should return non-nil for open pty")
	}
}

func TestPty_FileAfterClose(t *testing.T) {
	p, err := Open(Options{Command: "cat", Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	p.Close()

	if p.File() != nil {
		t.Error("File() should return nil for closed pty")
	}
}

func TestPty_EnvPropagation(t *testing.T) {
	p, err := Open(Options{Command: "env", Dir: t.TempDir(), Env: []string{"TEST_VAR=test_value_12345"}})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer p.Close()

	buf := make([]byte, 4096)
	var output strings.Builder
	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for env output, got: %q", output.String())
		default:
		}
		n, err := p.Read(buf)
		if n > 0 {
			output.Write(buf[:n])
		}
		if strings.Contains(output.String(), "TEST_VAR=test_value_12345") {
			return
		}
		if err != nil {
			break
		}
	}
	if !strings.Contains(output.String(), "TEST_VAR=test_value_12345") {
		t.Errorf("expected env var in output, got %q", output.String())
	}
}

func TestPty_OnDoneCallback(t *testing.T) {
	done := make(chan int, 1)
	p, err := Open(Options{
		Command: "true",
		Dir:     t.TempDir(),
		OnDone:  func(status int) { done <- status },
	})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer p.Close()

	select {
	case status := <-done:
		if status != 0 {
			t.Errorf("expected exit status 0, got %d", status)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for OnDone callback")
	}
}

func TestPty_ConcurrentSendBytesAndClose(t *testing.T) {
	p, err := Open(Options{Command: "cat", Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			if _, err := p.SendBytes([]byte("x")); err != nil {
				return
			}
		}
	}()

	time.Sleep(10 * time.Millisecond)
	p.Close()

	doneCh := make(chan struct{})
	go func() {
		wg.Wait()
		close(doneCh)
	}()

	select {
	case <-doneCh:
	case <-time.After(3 * time.Second):
		t.Error("concurrent send/close timed out")
	}
}
