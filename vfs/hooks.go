package vfs

// HookTable maps resolved paths to extension hooks.
type HookTable struct {
	hooks map[string]ExtensionHook
}

// NewHookTable returns an empty table.
func NewHookTable() *HookTable {
	return &HookTable{hooks: make(map[string]ExtensionHook)}
}

// Get returns the hook registered at path, or nil.
func (t *HookTable) Get(path string) ExtensionHook {
	return t.hooks[path]
}

// Has reports whether a hook is registered at path.
func (t *HookTable) Has(path string) bool {
	_, ok := t.hooks[path]
	return ok
}

// Set registers hook at path, replacing any previous hook.
func (t *HookTable) Set(path string, hook ExtensionHook) {
	t.hooks[path] = hook
}

// Delete removes the hook at path, if any.
func (t *HookTable) Delete(path string) {
	delete(t.hooks, path)
}
