package policy

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"golang.org/x/net/html"
)

// Script is a Lua policy script bound to a registry. The script may
// define a global function
//
//	function unremovable(tag, attrs) ... end
//
// returning true for elements that must survive any deletion. The
// attrs argument is a table of the element's attributes.
//
// Scripts run on the engine's single thread; the underlying Lua state
// is not safe for concurrent use.
type Script struct {
	state *lua.LState
}

// LoadScript runs the Lua file at path and registers the rules it
// defines with reg. The returned Script must be closed when the
// registry is discarded.
func LoadScript(reg *Registry, path string) (*Script, error) {
	L := lua.NewState()
	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("policy: load script %s: %w", path, err)
	}
	return bind(reg, L, path)
}

// LoadScriptString is LoadScript for in-memory sources.
func LoadScriptString(reg *Registry, src string) (*Script, error) {
	L := lua.NewState()
	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, fmt.Errorf("policy: load script: %w", err)
	}
	return bind(reg, L, "inline")
}

func bind(reg *Registry, L *lua.LState, name string) (*Script, error) {
	s := &Script{state: L}
	fn := L.GetGlobal("unremovable")
	if fn.Type() != lua.LTFunction {
		L.Close()
		return nil, fmt.Errorf("policy: script %s defines no unremovable function", name)
	}
	reg.AddRule("lua:"+name, func(n, _ *html.Node) bool {
		return s.call(fn, n)
	})
	return s, nil
}

// call invokes the script function for one element. Script errors are
// swallowed as "not claimed": policy scripts must never abort an
// in-flight deletion.
func (s *Script) call(fn lua.LValue, n *html.Node) bool {
	attrs := s.state.NewTable()
	for _, a := range n.Attr {
		attrs.RawSetString(a.Key, lua.LString(a.Val))
	}
	err := s.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(n.Data), attrs)
	if err != nil {
		return false
	}
	ret := s.state.Get(-1)
	s.state.Pop(1)
	return lua.LVAsBool(ret)
}

// Close releases the Lua state. Rules registered from the script must
// not be evaluated afterwards.
func (s *Script) Close() {
	s.state.Close()
}
