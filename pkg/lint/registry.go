package lint

import (
	"slices"
	"sort"
	"sync"

	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/jsast"
)

// globalRegistry is the single global registry for all lint rules.
var globalRegistry = NewRegistry()

// Registry stores registered lint rules for discovery.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]NodeRule // keyed by ID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]NodeRule)}
}

// Add registers rule, replacing any rule with the same ID.
func (r *Registry) Add(rule NodeRule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[rule.ID()] = rule
}

// All returns every registered rule sorted by ID.
func (r *Registry) All() []NodeRule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]NodeRule, 0, len(r.rules))
	for _, rule := range r.rules {
		rules = append(rules, rule)
	}
	sortRules(rules)
	return rules
}

// Get returns a rule by its ID.
func (r *Registry) Get(id string) (NodeRule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[id]
	return rule, ok
}

// ByGroup returns all rules in a group, sorted by ID.
func (r *Registry) ByGroup(group string) []NodeRule {
	var rules []NodeRule
	for _, rule := range r.All() {
		if rule.Group() == group {
			rules = append(rules, rule)
		}
	}
	return rules
}

// ForKind returns the rules subscribed to kind, sorted by ID.
func (r *Registry) ForKind(kind jsast.Kind) []NodeRule {
	var rules []NodeRule
	for _, rule := range r.All() {
		if slices.Contains(rule.NodeKinds(), kind) {
			rules = append(rules, rule)
		}
	}
	return rules
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}

// Reset removes all registered rules.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = make(map[string]NodeRule)
}

func sortRules(rules []NodeRule) {
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].ID() < rules[j].ID()
	})
}

// Register adds a RuleDef to the global registry.
// Call this from init() functions in rule packages.
func Register(rule RuleDef) {
	globalRegistry.Add(WrapRuleDef(rule))
}

// RegisterRule adds a NodeRule implementation to the global registry.
func RegisterRule(rule NodeRule) {
	globalRegistry.Add(rule)
}

// GetAllRules returns all registered rules sorted by ID.
func GetAllRules() []NodeRule {
	return globalRegistry.All()
}

// GetRuleByID returns a rule by its ID.
func GetRuleByID(id string) (NodeRule, bool) {
	return globalRegistry.Get(id)
}

// GetRulesByGroup returns all rules in a specific group.
func GetRulesByGroup(group string) []NodeRule {
	return globalRegistry.ByGroup(group)
}

// GetRulesForKind returns the rules subscribed to a node kind.
func GetRulesForKind(kind jsast.Kind) []NodeRule {
	return globalRegistry.ForKind(kind)
}

// AllRules returns metadata for all registered rules.
func AllRules() []core.RuleInfo {
	rules := globalRegistry.All()
	infos := make([]core.RuleInfo, 0, len(rules))
	for _, r := range rules {
		infos = append(infos, GetRuleInfo(r))
	}
	return infos
}

// Count returns the number of registered rules.
func Count() int {
	return globalRegistry.Len()
}

// Clear removes all registered rules. Used for testing.
func Clear() {
	globalRegistry.Reset()
}
