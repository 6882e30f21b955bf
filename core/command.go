package core

import (
	"sync"

	"hopperboard/protocol"
)

// CommandHandler handles one command. args holds the request arguments, resp
// is the caller's response buffer (its length is the most the frame can carry
// back). It returns the number of response bytes written and a status; on any
// status other than ok, nothing may be written.
type CommandHandler func(args []byte, resp []byte) (int, protocol.Status)

// Command represents a registered bus command
type Command struct {
	Code    uint8
	Name    string
	Handler CommandHandler
}

// CommandRegistry holds all registered commands, keyed by command code
type CommandRegistry struct {
	mu       sync.RWMutex
	commands map[uint8]*Command
}

var globalRegistry = NewCommandRegistry()

// NewCommandRegistry creates a new command registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		commands: make(map[uint8]*Command),
	}
}

// Register adds a command to the registry. Registering the same code twice
// replaces the earlier handler.
func (r *CommandRegistry) Register(code uint8, name string, handler CommandHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.commands[code] = &Command{
		Code:    code,
		Name:    name,
		Handler: handler,
	}
}

// GetCommand retrieves a command by code
func (r *CommandRegistry) GetCommand(code uint8) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[code]
	return cmd, ok
}

// Count returns the number of registered commands
func (r *CommandRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

// Dispatch calls the handler for a command code. Unknown codes report
// "command not supported"; the bus layer decides what the host sees.
func (r *CommandRegistry) Dispatch(code uint8, args []byte, resp []byte) (int, protocol.Status) {
	cmd, ok := r.GetCommand(code)
	if !ok {
		return 0, protocol.StatusCommandNotSupported
	}
	return cmd.Handler(args, resp)
}

// RegisterCommand registers a command in the global registry
func RegisterCommand(code uint8, name string, handler CommandHandler) {
	globalRegistry.Register(code, name, handler)
}

// DispatchCommand dispatches through the global registry. Its signature
// matches protocol.Dispatcher so the transport can route into it directly.
func DispatchCommand(code uint8, args []byte, resp []byte) (int, protocol.Status) {
	return globalRegistry.Dispatch(code, args, resp)
}

// GetGlobalRegistry returns the global command registry
func GetGlobalRegistry() *CommandRegistry {
	return globalRegistry
}
