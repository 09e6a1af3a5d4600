package theme

import (
	"sort"

	"github.com/glazekit/glaze/internal/merge"
)

// TokenKind tags a TokenSpec.
type TokenKind int

const (
	// TokenLiteral carries a concrete value.
	TokenLiteral TokenKind = iota
	// TokenFunctional computes its value from the variables resolved so far.
	TokenFunctional
	// TokenDependent computes its value from other named tokens, which are
	// resolved first regardless of declaration order.
	TokenDependent
)

// VariableFunc computes a token value from the accumulated variables mapping.
type VariableFunc func(vars *merge.Value) *merge.Value

// DependentFunc computes a token value from its resolved dependencies, passed
// in the order they were declared.
type DependentFunc func(deps []*merge.Value) *merge.Value

// TokenSpec is a tagged token definition: Literal, Functional or Dependent.
// Specs are immutable values; dispatch happens on the tag, never by probing
// an opaque callable.
type TokenSpec struct {
	kind      TokenKind
	literal   *merge.Value
	fn        VariableFunc
	dependsOn []string
	depFn     DependentFunc
}

// Literal builds a spec carrying a concrete value.
func Literal(v *merge.Value) TokenSpec {
	return TokenSpec{kind: TokenLiteral, literal: v}
}

// LiteralString is shorthand for Literal over a string scalar.
func LiteralString(s string) TokenSpec {
	return Literal(merge.String(s))
}

// Functional builds a spec computed from the variables resolved so far.
func Functional(fn VariableFunc) TokenSpec {
	return TokenSpec{kind: TokenFunctional, fn: fn}
}

// Dependent builds a spec computed from other tokens. The dependency list
// drives resolution order.
func Dependent(dependsOn []string, fn DependentFunc) TokenSpec {
	deps := make([]string, len(dependsOn))
	copy(deps, dependsOn)
	return TokenSpec{kind: TokenDependent, dependsOn: deps, depFn: fn}
}

// Kind reports the spec's tag.
func (s TokenSpec) Kind() TokenKind { return s.kind }

// DependsOn returns the declared dependency list of a Dependent spec.
func (s TokenSpec) DependsOn() []string { return s.dependsOn }

// tokenResolver resolves one spec map within a single pass, memoizing
// resolved tokens so shared dependencies are evaluated once.
type tokenResolver struct {
	specs    map[string]TokenSpec
	base     *merge.Value
	resolved map[string]*merge.Value
	visiting map[string]bool
	path     []string
}

// ResolveTokens evaluates every spec against the base variables and returns
// the base merged with the resolved token values, tokens winning on conflict.
// Dependent specs resolve their dependencies first; a dependency chain that
// revisits a token in flight fails with ErrCodeCyclicToken, and a dependency
// absent from both the spec map and the base variables fails with
// ErrCodeUnknownToken.
func ResolveTokens(specs map[string]TokenSpec, base *merge.Value) (*merge.Value, error) {
	if base.IsNil() {
		base = merge.EmptyMap()
	}
	r := &tokenResolver{
		specs:    specs,
		base:     base,
		resolved: make(map[string]*merge.Value, len(specs)),
		visiting: make(map[string]bool, len(specs)),
	}

	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := r.resolve(name); err != nil {
			return nil, err
		}
	}

	entries := make(map[string]*merge.Value, len(r.resolved))
	for name, value := range r.resolved {
		entries[name] = value
	}
	merged, err := merge.Merge(base, merge.Map(entries))
	if err != nil {
		return nil, newMergeError("merging resolved tokens", err)
	}
	return merged, nil
}

func (r *tokenResolver) resolve(name string) (*merge.Value, error) {
	if value, ok := r.resolved[name]; ok {
		return value, nil
	}
	if r.visiting[name] {
		cycle := append(append([]string(nil), r.path...), name)
		return nil, newCycleError(cycle)
	}

	spec, ok := r.specs[name]
	if !ok {
		// Not part of this pass; the base variables may still satisfy it.
		if value, found := r.base.Get(name); found {
			return value, nil
		}
		return nil, nil
	}

	r.visiting[name] = true
	r.path = append(r.path, name)
	defer func() {
		delete(r.visiting, name)
		r.path = r.path[:len(r.path)-1]
	}()

	var value *merge.Value
	switch spec.kind {
	case TokenLiteral:
		value = spec.literal
	case TokenFunctional:
		value = spec.fn(r.base)
	case TokenDependent:
		deps := make([]*merge.Value, len(spec.dependsOn))
		for i, dep := range spec.dependsOn {
			resolved, err := r.resolve(dep)
			if err != nil {
				return nil, err
			}
			if resolved == nil {
				return nil, newUnknownDependencyError(name, dep)
			}
			deps[i] = resolved
		}
		value = spec.depFn(deps)
	}

	if value == nil {
		value = merge.Nil()
	}
	r.resolved[name] = value
	return value, nil
}

// mergeSpecs layers token spec maps left to right, later layers replacing
// earlier specs per name. Declaration precedence between layers is total; the
// compose rule applies to style functions, not token specs.
func mergeSpecs(layers ...map[string]TokenSpec) map[string]TokenSpec {
	merged := make(map[string]TokenSpec)
	for _, layer := range layers {
		for name, spec := range layer {
			merged[name] = spec
		}
	}
	return merged
}
