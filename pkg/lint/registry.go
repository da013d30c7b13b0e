package lint

import (
	"cmp"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
)

type keyKind uint8

const (
	keyID keyKind = iota
	keyName
	keyAlias
)

type registryKey struct {
	ruleID string
	kind   keyKind
}

// suggestDistance bounds how far a mistyped rule key may be from a known one.
const suggestDistance = 2

// Registry holds the registered rules. Every ID, name and alias shares one
// key space that maps to a canonical rule ID.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule
	keys  map[string]registryKey
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		rules: make(map[string]Rule),
		keys:  make(map[string]registryKey),
	}
}

// Register adds a rule. A rule with the same ID is replaced along with its
// old name.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.rules[rule.ID()]; ok {
		delete(r.keys, old.Name())
	}
	r.rules[rule.ID()] = rule
	r.keys[rule.ID()] = registryKey{ruleID: rule.ID(), kind: keyID}
	r.keys[rule.Name()] = registryKey{ruleID: rule.ID(), kind: keyName}
}

// RegisterAlias maps a short alias such as "tabs" to a rule ID. The target
// need not be registered yet.
func (r *Registry) RegisterAlias(alias, ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[alias] = registryKey{ruleID: ruleID, kind: keyAlias}
}

// Get retrieves a rule by ID or name. Aliases are not followed.
func (r *Registry) Get(key string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	k, ok := r.keys[key]
	if !ok || k.kind == keyAlias {
		return nil, false
	}
	rule, ok := r.rules[k.ruleID]
	return rule, ok
}

// GetByID retrieves a rule by its ID only.
func (r *Registry) GetByID(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[id]
	return rule, ok
}

// Resolve returns the canonical ID and rule for an ID, name or alias.
// Aliases pointing at unregistered rules do not resolve.
func (r *Registry) Resolve(key string) (string, Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	k, ok := r.keys[key]
	if !ok {
		return "", nil, false
	}
	rule, ok := r.rules[k.ruleID]
	if !ok {
		return "", nil, false
	}
	return rule.ID(), rule, true
}

// Suggest returns the registered key closest to a key that failed to
// resolve, compared case-insensitively.
func (r *Registry) Suggest(key string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	want := strings.ToLower(key)
	best, bestDist := "", suggestDistance+1
	for _, candidate := range slices.Sorted(maps.Keys(r.keys)) {
		if _, ok := r.rules[r.keys[candidate].ruleID]; !ok {
			continue
		}
		if d := levenshtein.ComputeDistance(want, strings.ToLower(candidate)); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best, best != ""
}

// Aliases returns the sorted aliases registered for ruleID.
func (r *Registry) Aliases(ruleID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []string
	for key, k := range r.keys {
		if k.kind == keyAlias && k.ruleID == ruleID {
			result = append(result, key)
		}
	}
	slices.Sort(result)
	return result
}

// Rules returns all registered rules sorted by ID.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := slices.Collect(maps.Values(r.rules))
	slices.SortFunc(result, func(a, b Rule) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return result
}

// IDs returns all registered rule IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.rules))
}

// DefaultRegistry holds the built-in rules, which register themselves in
// init().
//
//nolint:gochecknoglobals // rule registration
var DefaultRegistry = NewRegistry()
