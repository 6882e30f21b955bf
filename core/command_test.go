package core

import (
	"testing"

	"hopperboard/protocol"
)

func TestCommandRegistry(t *testing.T) {
	registry := NewCommandRegistry()

	var called bool
	registry.Register(0x80, "test_command", func(args []byte, resp []byte) (int, protocol.Status) {
		called = true
		return 0, protocol.StatusCommandOK
	})

	cmd, ok := registry.GetCommand(0x80)
	if !ok {
		t.Fatal("failed to retrieve registered command")
	}
	if cmd.Name != "test_command" {
		t.Errorf("command name = %q, want \"test_command\"", cmd.Name)
	}

	resp := make([]byte, 8)
	_, status := registry.Dispatch(0x80, nil, resp)
	if status != protocol.StatusCommandOK {
		t.Errorf("Dispatch status = %v, want ok", status)
	}
	if !called {
		t.Error("command handler was not called")
	}

	_, status = registry.Dispatch(0x99, nil, resp)
	if status != protocol.StatusCommandNotSupported {
		t.Errorf("unknown code status = %v, want command not supported", status)
	}
}

func TestCommandRegistryArgumentsPassed(t *testing.T) {
	registry := NewCommandRegistry()

	var gotArgs []byte
	registry.Register(0x81, "echo", func(args []byte, resp []byte) (int, protocol.Status) {
		gotArgs = append([]byte(nil), args...)
		n := copy(resp, args)
		return n, protocol.StatusCommandOK
	})

	resp := make([]byte, 8)
	n, status := registry.Dispatch(0x81, []byte{0xDE, 0xAD}, resp)
	if status != protocol.StatusCommandOK || n != 2 {
		t.Fatalf("n=%d status=%v", n, status)
	}
	if len(gotArgs) != 2 || gotArgs[0] != 0xDE || gotArgs[1] != 0xAD {
		t.Errorf("handler args = % x, want de ad", gotArgs)
	}
	if resp[0] != 0xDE || resp[1] != 0xAD {
		t.Errorf("response = % x, want de ad", resp[:n])
	}
}

func TestCommandRegistryReplace(t *testing.T) {
	registry := NewCommandRegistry()

	registry.Register(0x80, "first", func(args []byte, resp []byte) (int, protocol.Status) {
		return 0, protocol.StatusCommandFailed
	})
	registry.Register(0x80, "second", func(args []byte, resp []byte) (int, protocol.Status) {
		return 0, protocol.StatusCommandOK
	})

	if registry.Count() != 1 {
		t.Errorf("Count() = %d, want 1 after re-registration", registry.Count())
	}

	resp := make([]byte, 8)
	if _, status := registry.Dispatch(0x80, nil, resp); status != protocol.StatusCommandOK {
		t.Errorf("status = %v, want ok from replacing handler", status)
	}
}
