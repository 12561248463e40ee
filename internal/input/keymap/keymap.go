package keymap

import (
	"errors"
	"sort"
	"sync"

	"github.com/dshills/harness/internal/input/key"
)

// Keymap errors.
var (
	ErrInvalidKeys  = errors.New("keymap: invalid key combination")
	ErrEmptyCommand = errors.New("keymap: empty command")
)

// Keymap holds key bindings. It is safe for concurrent use.
type Keymap struct {
	mu       sync.RWMutex
	bindings map[chord]Binding
}

// New creates an empty keymap.
func New() *Keymap {
	return &Keymap{
		bindings: make(map[chord]Binding),
	}
}

// Bind maps keys to command, replacing any binding for the same combination.
func (k *Keymap) Bind(keys, command string) error {
	return k.Add(NewBinding(keys, command))
}

// Add adds a fully configured binding, replacing any binding for the same
// combination.
func (k *Keymap) Add(b Binding) error {
	if err := b.Validate(); err != nil {
		return err
	}
	c, _ := parseChord(b.Keys)

	k.mu.Lock()
	defer k.mu.Unlock()
	k.bindings[c] = b
	return nil
}

// AddAll adds bindings in order. It stops at the first invalid binding;
// bindings before it stay added.
func (k *Keymap) AddAll(bindings []Binding) error {
	for _, b := range bindings {
		if err := k.Add(b); err != nil {
			return err
		}
	}
	return nil
}

// Unbind removes the binding for keys and reports whether one existed.
func (k *Keymap) Unbind(keys string) bool {
	c, err := parseChord(keys)
	if err != nil {
		return false
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	_, ok := k.bindings[c]
	delete(k.bindings, c)
	return ok
}

// Lookup returns the binding for a key and modifier state.
func (k *Keymap) Lookup(kc key.Key, mods key.Modifier) (Binding, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	b, ok := k.bindings[chord{key: kc, mods: normalize(mods)}]
	return b, ok
}

// Bindings returns all bindings sorted by their key combination.
func (k *Keymap) Bindings() []Binding {
	k.mu.RLock()
	out := make([]Binding, 0, len(k.bindings))
	for _, b := range k.bindings {
		out = append(out, b)
	}
	k.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Keys < out[j].Keys })
	return out
}

// Len returns the number of bindings.
func (k *Keymap) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.bindings)
}

// Clear removes all bindings.
func (k *Keymap) Clear() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.bindings = make(map[chord]Binding)
}
