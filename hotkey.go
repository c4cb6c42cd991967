package motion

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// KeyCombo is a set of keys that must be held together to fire a hotkey.
type KeyCombo []ebiten.Key

// keyNames maps lower-cased ebiten key names to keys.
var keyNames = func() map[string]ebiten.Key {
	m := make(map[string]ebiten.Key, int(ebiten.KeyMax)+1)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		m[strings.ToLower(k.String())] = k
	}
	return m
}()

// String returns the combo in "ControlLeft+F" form.
func (c KeyCombo) String() string {
	parts := make([]string, len(c))
	for i, k := range c {
		parts[i] = k.String()
	}
	return strings.Join(parts, "+")
}

// ParseKeyCombo parses the form produced by KeyCombo.String. Key names are
// matched case-insensitively.
func ParseKeyCombo(s string) (KeyCombo, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("parse key combo: empty")
	}
	var combo KeyCombo
	for _, part := range strings.Split(s, "+") {
		k, ok := keyNames[strings.ToLower(strings.TrimSpace(part))]
		if !ok {
			return nil, fmt.Errorf("parse key combo %q: unknown key %q", s, part)
		}
		combo = append(combo, k)
	}
	return combo, nil
}

// held reports whether every key of the combo is down.
func (c KeyCombo) held(pressed func(ebiten.Key) bool) bool {
	if len(c) == 0 {
		return false
	}
	for _, k := range c {
		if !pressed(k) {
			return false
		}
	}
	return true
}

// HotkeyID identifies a registered hotkey. The zero value is never assigned.
type HotkeyID uint32

// InvalidHotkey is returned when no hotkey could be registered.
const InvalidHotkey HotkeyID = 0

type hotkeyEntry struct {
	id          HotkeyID
	name        string
	description string
	bindings    []KeyCombo
	fn          func() bool
	down        bool
}

// HotkeyInfo describes a registered hotkey for display.
type HotkeyInfo struct {
	ID          HotkeyID
	Name        string
	Description string
	Bindings    []KeyCombo
}

// RegisterHotkey adds a hotkey that calls fn when one of its bindings is
// pressed. It starts unbound; use BindHotkey or LoadHotkey.
func (tr *Triggers) RegisterHotkey(name, description string, fn func() bool) HotkeyID {
	tr.nextID++
	id := HotkeyID(tr.nextID)
	tr.hotkeys = append(tr.hotkeys, &hotkeyEntry{
		id:          id,
		name:        name,
		description: description,
		fn:          fn,
	})
	return id
}

// UnregisterHotkey removes a hotkey. Unknown or invalid ids are ignored.
func (tr *Triggers) UnregisterHotkey(id HotkeyID) {
	if id == InvalidHotkey {
		return
	}
	for i, h := range tr.hotkeys {
		if h.id == id {
			copy(tr.hotkeys[i:], tr.hotkeys[i+1:])
			tr.hotkeys[len(tr.hotkeys)-1] = nil
			tr.hotkeys = tr.hotkeys[:len(tr.hotkeys)-1]
			return
		}
	}
}

func (tr *Triggers) hotkey(id HotkeyID) *hotkeyEntry {
	for _, h := range tr.hotkeys {
		if h.id == id {
			return h
		}
	}
	return nil
}

// BindHotkey replaces the key bindings of a hotkey.
func (tr *Triggers) BindHotkey(id HotkeyID, combos ...KeyCombo) {
	if h := tr.hotkey(id); h != nil {
		h.bindings = append([]KeyCombo(nil), combos...)
		h.down = false
	}
}

// HotkeyBindings returns the key bindings of a hotkey.
func (tr *Triggers) HotkeyBindings(id HotkeyID) []KeyCombo {
	if h := tr.hotkey(id); h != nil {
		return append([]KeyCombo(nil), h.bindings...)
	}
	return nil
}

// Hotkeys lists the registered hotkeys in registration order.
func (tr *Triggers) Hotkeys() []HotkeyInfo {
	out := make([]HotkeyInfo, len(tr.hotkeys))
	for i, h := range tr.hotkeys {
		out[i] = HotkeyInfo{
			ID:          h.id,
			Name:        h.name,
			Description: h.description,
			Bindings:    append([]KeyCombo(nil), h.bindings...),
		}
	}
	return out
}

// LoadHotkey restores the bindings persisted under key. Entries that fail
// to parse are skipped.
func (tr *Triggers) LoadHotkey(id HotkeyID, s *Settings, key string) {
	var combos []KeyCombo
	for _, raw := range s.Strings(key) {
		combo, err := ParseKeyCombo(raw)
		if err != nil {
			logger.Warn().Err(err).Str("hotkey", key).Msg("skipping hotkey binding")
			continue
		}
		combos = append(combos, combo)
	}
	tr.BindHotkey(id, combos...)
}

// SaveHotkey persists the bindings of a hotkey under key.
func (tr *Triggers) SaveHotkey(id HotkeyID, s *Settings, key string) {
	h := tr.hotkey(id)
	if h == nil {
		return
	}
	raw := make([]string, len(h.bindings))
	for i, c := range h.bindings {
		raw[i] = c.String()
	}
	s.SetStrings(key, raw)
}

// FireHotkey runs a hotkey's callback as if it had been pressed.
func (tr *Triggers) FireHotkey(id HotkeyID) bool {
	h := tr.hotkey(id)
	if h == nil || h.fn == nil {
		return false
	}
	return h.fn()
}

// Poll reads the keyboard and fires every hotkey whose binding became fully
// held since the previous Poll. Call once per frame from the host loop.
func (tr *Triggers) Poll() {
	pending := tr.pollBuf[:0]
	for _, h := range tr.hotkeys {
		down := false
		for _, c := range h.bindings {
			if c.held(tr.keyPressed) {
				down = true
				break
			}
		}
		if down && !h.down {
			pending = append(pending, h)
		}
		h.down = down
	}
	tr.pollBuf = pending
	// Callbacks may register or unregister hotkeys. An entry unregistered
	// by an earlier callback of this poll does not fire.
	for i, h := range pending {
		if h.fn != nil && tr.hotkey(h.id) == h {
			h.fn()
		}
		pending[i] = nil
	}
}
