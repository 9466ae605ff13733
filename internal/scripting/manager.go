package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/quackbattle/internal/game/dice"
)

// globalScript is the reserved key for shared scripts loaded via LoadGlobal.
// CallHook falls back to this VM when no named VM is found.
const globalScript = "__global__"

// Hook names a script may define.
const (
	HookChooseSkill = "choose_skill"
)

// AgentInfo is a snapshot of a combatant passed to Lua callbacks.
type AgentInfo struct {
	Name     string
	HP       int
	MaxHP    int
	MP       int
	MaxMP    int
	Level    int
	Friendly bool
}

// Manager owns one sandboxed LState per AI script and exposes hook dispatch.
//
// Manager is safe for concurrent CallHook after all loads complete. Each
// LState is single-threaded, so calls into the same VM are serialized.
type Manager struct {
	mu        sync.Mutex
	states    map[string]*lua.LState
	instLimit int
	src       dice.Source
	logger    *zap.Logger
}

// NewManager creates a Manager.
//
// Precondition: src and logger must be non-nil; instLimit >= 0 (0 uses
// DefaultInstructionLimit).
// Postcondition: Returns a non-nil Manager with no scripts loaded.
func NewManager(src dice.Source, logger *zap.Logger, instLimit int) *Manager {
	if src == nil || logger == nil {
		panic("scripting: NewManager called with nil source or logger")
	}
	return &Manager{
		states:    make(map[string]*lua.LState),
		instLimit: instLimit,
		src:       src,
		logger:    logger,
	}
}

// LoadDir loads every *.lua file in dir into its own VM, keyed by the file
// name without extension, in lexicographic order.
//
// Precondition: dir must be a readable directory.
func (m *Manager) LoadDir(dir string) error {
	files, err := luaFiles(dir)
	if err != nil {
		return err
	}
	for _, path := range files {
		name := strings.TrimSuffix(filepath.Base(path), ".lua")
		if err := m.loadInto(name, []string{path}); err != nil {
			return err
		}
	}
	return nil
}

// LoadScript loads a single file as the VM for name.
func (m *Manager) LoadScript(name, path string) error {
	return m.loadInto(name, []string{path})
}

// LoadGlobal creates the fallback VM from every *.lua file in dir.
//
// Precondition: dir must be a readable directory.
func (m *Manager) LoadGlobal(dir string) error {
	files, err := luaFiles(dir)
	if err != nil {
		return err
	}
	return m.loadInto(globalScript, files)
}

func luaFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scripting: reading script dir %q: %w", dir, err)
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *Manager) loadInto(key string, files []string) error {
	L := NewSandboxedState(m.instLimit)
	m.RegisterModules(L)

	for _, path := range files {
		if err := L.DoFile(path); err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q for %q: %w", path, key, err)
		}
	}

	m.mu.Lock()
	if old, ok := m.states[key]; ok {
		old.Close()
	}
	m.states[key] = L
	m.mu.Unlock()
	m.logger.Debug("script loaded", zap.String("script", key), zap.Int("files", len(files)))
	return nil
}

// Has reports whether a VM is loaded for name.
func (m *Manager) Has(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.states[name]
	return ok
}

// CallHook calls the named Lua global function in the VM for script. If there
// is no such VM the global VM is tried as a fallback. Returns (LNil, nil) if
// the hook is not defined or no VM exists. Lua runtime errors, including an
// exhausted instruction budget, are logged at Warn level and never propagated.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(script, hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	L, ok := m.states[script]
	if !ok {
		L = m.states[globalScript]
	}
	if L == nil {
		m.logger.Info("scripting: no VM for script",
			zap.String("script", script),
			zap.String("hook", hook),
		)
		return lua.LNil, nil
	}

	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	cancel := arm(L, m.instLimit)
	defer cancel()
	if err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("script", script),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := L.Get(-1)
	L.Pop(1)
	return ret, nil
}

// ChooseSkill asks script's choose_skill hook which of skills self should use
// against foes. It reports false when the hook is missing, fails, or names a
// skill not in skills.
func (m *Manager) ChooseSkill(script string, self AgentInfo, skills []int, foes []AgentInfo) (int, bool) {
	m.mu.Lock()
	L, ok := m.states[script]
	if !ok {
		L = m.states[globalScript]
	}
	m.mu.Unlock()
	if L == nil {
		return 0, false
	}

	skillTbl := L.NewTable()
	for _, id := range skills {
		skillTbl.Append(lua.LNumber(id))
	}
	foeTbl := L.NewTable()
	for _, f := range foes {
		foeTbl.Append(agentTable(L, f))
	}

	ret, err := m.CallHook(script, HookChooseSkill, agentTable(L, self), skillTbl, foeTbl)
	if err != nil {
		return 0, false
	}
	n, ok := ret.(lua.LNumber)
	if !ok {
		return 0, false
	}
	id := int(n)
	for _, s := range skills {
		if s == id {
			return id, true
		}
	}
	m.logger.Warn("scripting: choose_skill returned unknown skill",
		zap.String("script", script),
		zap.Int("skill", id),
	)
	return 0, false
}

func agentTable(L *lua.LState, a AgentInfo) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("name", lua.LString(a.Name))
	t.RawSetString("hp", lua.LNumber(a.HP))
	t.RawSetString("max_hp", lua.LNumber(a.MaxHP))
	t.RawSetString("mp", lua.LNumber(a.MP))
	t.RawSetString("max_mp", lua.LNumber(a.MaxMP))
	t.RawSetString("level", lua.LNumber(a.Level))
	t.RawSetString("friendly", lua.LBool(a.Friendly))
	return t
}

// Close releases every VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, L := range m.states {
		L.Close()
		delete(m.states, k)
	}
}
