package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type Action string

// Binding is one action reachable by any of Keys within a single scope.
type Binding struct {
	Action Action
	Keys   []string
	Help   string
}

// KeyRegistry maps key names to actions per input scope. Lookups fall back to
// the global scope.
type KeyRegistry struct {
	scopes map[string]*keyScope
}

type keyScope struct {
	bindings []Binding
	byKey    map[string]int
}

const (
	scopeGlobal      = "global"
	scopeConfirm     = "confirm"
	scopeGuard       = "guard"
	scopeVendorForm  = "vendor_form"
	scopeVendors     = "vendors"
	scopeUploadInput = "upload_input"
	scopeUpload      = "upload"
	scopeGenerate    = "generate"
	scopeGuide       = "guide"
	scopeSearch      = "search"
)

const (
	actionQuit           Action = "quit"
	actionReset          Action = "reset"
	actionNext           Action = "next"
	actionBack           Action = "back"
	actionNextField      Action = "next_field"
	actionPrevField      Action = "prev_field"
	actionSubmit         Action = "submit"
	actionEdit           Action = "edit"
	actionLeave          Action = "leave"
	actionUp             Action = "up"
	actionDown           Action = "down"
	actionGenerate       Action = "generate"
	actionSearch         Action = "search"
	actionClearSearch    Action = "clear_search"
	actionConfirm        Action = "confirm"
	actionCancel         Action = "cancel"
	actionFilterVendor   Action = "filter_vendor"
	actionFilterCategory Action = "filter_category"
	actionSort           Action = "sort"
	actionSortDirection  Action = "sort_direction"
	actionToggleSelect   Action = "toggle_select"
	actionClearSelection Action = "clear_selection"
	actionExport         Action = "export"
)

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{scopes: make(map[string]*keyScope)}
	reg := func(scope string, action Action, keys []string, help string) {
		r.Bind(scope, action, help, keys...)
	}

	// Global keys never collide with text input.
	reg(scopeGlobal, actionQuit, []string{"ctrl+c"}, "quit")
	reg(scopeGlobal, actionReset, []string{"ctrl+r"}, "reset")
	reg(scopeGlobal, actionNext, []string{"ctrl+n"}, "next step")
	reg(scopeGlobal, actionBack, []string{"ctrl+b"}, "prev step")

	reg(scopeConfirm, actionConfirm, []string{"y"}, "yes")
	reg(scopeConfirm, actionCancel, []string{"n", "esc"}, "no")

	reg(scopeGuard, actionBack, []string{"b"}, "back")
	reg(scopeGuard, actionQuit, []string{"q"}, "quit")

	reg(scopeVendorForm, actionNextField, []string{"tab", "down"}, "next field")
	reg(scopeVendorForm, actionPrevField, []string{"shift+tab", "up"}, "prev field")
	reg(scopeVendorForm, actionSubmit, []string{"enter"}, "add vendor")
	reg(scopeVendorForm, actionLeave, []string{"esc"}, "done typing")

	reg(scopeVendors, actionEdit, []string{"i", "tab"}, "new vendor")
	reg(scopeVendors, actionNext, []string{"n"}, "next")
	reg(scopeVendors, actionQuit, []string{"q"}, "quit")

	reg(scopeUploadInput, actionUp, []string{"up"}, "prev vendor")
	reg(scopeUploadInput, actionDown, []string{"down"}, "next vendor")
	reg(scopeUploadInput, actionSubmit, []string{"enter"}, "upload")
	reg(scopeUploadInput, actionLeave, []string{"esc"}, "done typing")

	reg(scopeUpload, actionUp, []string{"up", "k"}, "prev vendor")
	reg(scopeUpload, actionDown, []string{"down", "j"}, "next vendor")
	reg(scopeUpload, actionEdit, []string{"i", "enter"}, "edit path")
	reg(scopeUpload, actionBack, []string{"b"}, "back")
	reg(scopeUpload, actionNext, []string{"n"}, "next")
	reg(scopeUpload, actionQuit, []string{"q"}, "quit")

	reg(scopeGenerate, actionGenerate, []string{"g"}, "generate")
	reg(scopeGenerate, actionBack, []string{"b"}, "back")
	reg(scopeGenerate, actionNext, []string{"n"}, "next")
	reg(scopeGenerate, actionQuit, []string{"q"}, "quit")

	reg(scopeGuide, actionSearch, []string{"/"}, "search")
	reg(scopeGuide, actionFilterVendor, []string{"v"}, "vendor")
	reg(scopeGuide, actionFilterCategory, []string{"c"}, "category")
	reg(scopeGuide, actionSort, []string{"s"}, "sort")
	reg(scopeGuide, actionSortDirection, []string{"S"}, "direction")
	reg(scopeGuide, actionUp, []string{"up", "k"}, "up")
	reg(scopeGuide, actionDown, []string{"down", "j"}, "down")
	reg(scopeGuide, actionToggleSelect, []string{"space"}, "select")
	reg(scopeGuide, actionClearSelection, []string{"x"}, "clear selection")
	reg(scopeGuide, actionExport, []string{"e"}, "export")
	reg(scopeGuide, actionBack, []string{"b"}, "back")
	reg(scopeGuide, actionQuit, []string{"q"}, "quit")

	reg(scopeSearch, actionConfirm, []string{"enter"}, "apply")
	reg(scopeSearch, actionClearSearch, []string{"esc"}, "clear search")

	return r
}

// Bind adds action to scope under keys. A key already taken in that scope
// keeps its first action; a binding left with no free keys is dropped.
func (r *KeyRegistry) Bind(scope string, action Action, help string, keys ...string) {
	ks := r.scopes[scope]
	if ks == nil {
		ks = &keyScope{byKey: make(map[string]int)}
		r.scopes[scope] = ks
	}
	b := Binding{Action: action, Help: help}
	for _, k := range keys {
		k = normalizeKeyName(k)
		if _, taken := ks.byKey[k]; k == "" || taken || slices.Contains(b.Keys, k) {
			continue
		}
		b.Keys = append(b.Keys, k)
	}
	if len(b.Keys) == 0 {
		return
	}
	for _, k := range b.Keys {
		ks.byKey[k] = len(ks.bindings)
	}
	ks.bindings = append(ks.bindings, b)
}

func (r *KeyRegistry) BindingsForScope(scope string) []Binding {
	if ks := r.scopes[scope]; ks != nil {
		return slices.Clone(ks.bindings)
	}
	return nil
}

// Lookup finds the binding for keyName in scope, then in the global scope.
func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	keyName = normalizeKeyName(keyName)
	if keyName == "" {
		return nil
	}
	for _, name := range []string{scope, scopeGlobal} {
		ks := r.scopes[name]
		if ks == nil {
			continue
		}
		if i, ok := ks.byKey[keyName]; ok {
			b := ks.bindings[i]
			return &b
		}
	}
	return nil
}

// HelpBindings returns the scope's bindings followed by the global ones, for
// the footer.
func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	items := r.BindingsForScope(scope)
	if scope != scopeGlobal {
		items = append(items, r.BindingsForScope(scopeGlobal)...)
	}
	out := make([]key.Binding, 0, len(items))
	for _, b := range items {
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Help)))
	}
	return out
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if trimmed == "" {
		return ""
	}
	// "S" and "s" are different bindings; only named keys are case-folded.
	if len(trimmed) == 1 {
		return trimmed
	}
	return strings.ToLower(trimmed)
}
