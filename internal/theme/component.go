package theme

// Config enumerates the options recognized when creating a component
// definition.
type Config struct {
	// Name is the themeable identity the definition registers under. Theme
	// documents address component overrides by this name.
	Name string
	// Tokens are the component's default token specs.
	Tokens map[string]TokenSpec
	// Styles are the component's default per-slot style functions.
	Styles Styles
	// Slots names the sub-components rendered by this component.
	Slots map[string]string
	// Variants are the component's variation axes, in declaration order.
	Variants []Variant
}

// Definition is an immutable component definition. Composition happens by
// layering a delta configuration over a base with Extend, producing a new
// Definition; a base is never altered in place. Each Definition carries a
// version id used by the resolution cache as its identity.
type Definition struct {
	version  uint64
	name     string
	tokens   map[string]TokenSpec
	styles   map[string][]SlotStyleFunc
	slots    map[string]string
	variants []Variant
}

// NewDefinition builds a Definition from a configuration.
func NewDefinition(cfg Config) *Definition {
	d := &Definition{
		version: nextVersion(),
		name:    cfg.Name,
		tokens:  make(map[string]TokenSpec, len(cfg.Tokens)),
		styles:  make(map[string][]SlotStyleFunc, len(cfg.Styles)),
		slots:   make(map[string]string, len(cfg.Slots)),
	}
	for name, spec := range cfg.Tokens {
		d.tokens[name] = spec
	}
	for slot, fn := range cfg.Styles {
		d.styles[slot] = []SlotStyleFunc{fn}
	}
	for slot, ref := range cfg.Slots {
		d.slots[slot] = ref
	}
	d.variants = append(d.variants, cfg.Variants...)
	return d
}

// Name returns the themeable identity.
func (d *Definition) Name() string { return d.name }

// Version returns the identity id assigned at construction.
func (d *Definition) Version() uint64 { return d.version }

// Slots returns the slot map. Callers must not mutate the result.
func (d *Definition) Slots() map[string]string { return d.slots }

// Variants returns the declared variants in order.
func (d *Definition) Variants() []Variant { return d.variants }

// Extend layers a delta configuration over the definition and returns a new
// immutable Definition with a fresh version id. Token specs in the delta
// replace same-named specs; style functions at the same slot compose rather
// than replace, the delta's output merging over the base's; variants append
// after the base's in declaration order, so they take precedence.
func (d *Definition) Extend(delta Config) *Definition {
	name := delta.Name
	if name == "" {
		name = d.name
	}

	tokens := make(map[string]TokenSpec, len(d.tokens)+len(delta.Tokens))
	for n, spec := range d.tokens {
		tokens[n] = spec
	}
	for n, spec := range delta.Tokens {
		tokens[n] = spec
	}

	styles := make(map[string][]SlotStyleFunc, len(d.styles)+len(delta.Styles))
	for slot, stack := range d.styles {
		styles[slot] = append([]SlotStyleFunc(nil), stack...)
	}
	for slot, fn := range delta.Styles {
		styles[slot] = append(styles[slot], fn)
	}

	slots := make(map[string]string, len(d.slots)+len(delta.Slots))
	for slot, ref := range d.slots {
		slots[slot] = ref
	}
	for slot, ref := range delta.Slots {
		slots[slot] = ref
	}

	variants := make([]Variant, 0, len(d.variants)+len(delta.Variants))
	variants = append(variants, d.variants...)
	variants = append(variants, delta.Variants...)

	return &Definition{
		version:  nextVersion(),
		name:     name,
		tokens:   tokens,
		styles:   styles,
		slots:    slots,
		variants: variants,
	}
}
