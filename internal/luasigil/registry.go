package luasigil

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Shopify/go-lua"
)

// firstSlot is the first Lua registry index handed to sigil functions. Lower
// integer keys are reserved by the runtime.
const firstSlot = 1 << 10

// Registry owns the Lua state sigil scripts run in and the functions they
// registered. Each function is stored in the Lua registry at an integer slot.
//
// A Registry and the handlers built on it share one Lua state and must stay on
// one goroutine, like the fight they serve.
type Registry struct {
	state *lua.State
	slots map[string]int
	next  int
}

// NewRegistry creates a Lua state with the standard libraries, the handle
// types, and the sigil registration global.
func NewRegistry() *Registry {
	r := &Registry{
		state: lua.NewState(),
		slots: make(map[string]int),
		next:  firstSlot,
	}
	lua.OpenLibraries(r.state)
	registerHandleTypes(r.state)
	r.state.PushGoFunction(r.luaSigil)
	r.state.SetGlobal("sigil")
	return r
}

// LoadFile runs a sigil script from disk.
func (r *Registry) LoadFile(path string) error {
	if err := lua.LoadFile(r.state, path, ""); err != nil {
		return fmt.Errorf("load sigil script: %w", err)
	}
	if err := r.state.ProtectedCall(0, 0, 0); err != nil {
		r.state.Pop(1)
		return fmt.Errorf("run sigil script: %w", err)
	}
	return nil
}

// LoadString runs a sigil script held in memory.
func (r *Registry) LoadString(src string) error {
	if err := lua.LoadString(r.state, src); err != nil {
		return fmt.Errorf("load sigil script: %w", err)
	}
	if err := r.state.ProtectedCall(0, 0, 0); err != nil {
		r.state.Pop(1)
		return fmt.Errorf("run sigil script: %w", err)
	}
	return nil
}

// Register stores the function on top of the Lua stack under name and pops it.
func (r *Registry) Register(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		r.state.Pop(1)
		return fmt.Errorf("sigil name is required")
	}
	if _, exists := r.slots[name]; exists {
		r.state.Pop(1)
		return fmt.Errorf("%w: %s", ErrSigilAlreadyRegistered, name)
	}
	slot := r.next
	r.next++
	r.state.RawSetInt(lua.RegistryIndex, slot)
	r.slots[name] = slot
	return nil
}

// Lookup returns the Lua registry slot holding a sigil function.
func (r *Registry) Lookup(name string) (int, error) {
	slot, ok := r.slots[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrSigilNotFound, name)
	}
	return slot, nil
}

// push pushes the function stored at slot onto the Lua stack.
func (r *Registry) push(slot int) {
	r.state.RawGetInt(lua.RegistryIndex, slot)
}

// Has reports whether name has a registered function.
func (r *Registry) Has(name string) bool {
	_, err := r.Lookup(name)
	return err == nil
}

// Names returns the registered sigil names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.slots))
	for name := range r.slots {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (r *Registry) luaSigil(state *lua.State) int {
	name := lua.CheckString(state, 1)
	lua.CheckType(state, 2, lua.TypeFunction)
	state.PushValue(2)
	if err := r.Register(name); err != nil {
		lua.Errorf(state, "%s", err.Error())
	}
	return 0
}
