package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Unbounded is the MaxInputs value of a variable-arity operator.
const Unbounded = -1

// DefaultVariadicName is the input name used for slots of a variadic source group.
const DefaultVariadicName = "sourceProduct"

// Source is a single named input of an operator.
type Source struct {
	Name        string
	Description string
	Optional    bool
}

// Variadic describes a group of unnamed inputs. A positive Count adds that
// many fixed slots; zero or less makes the operator variable-arity.
type Variadic struct {
	Name        string
	Description string
	Count       int
}

// Output describes the product an operator produces.
type Output struct {
	Description string
}

// Parameter is a single entry of an operator's parameter schema.
type Parameter struct {
	Name        string
	Type        cty.Type
	Description string
	// Default is nil when the parameter is required.
	Default *cty.Value
}

// Definition is the declared form of an operator, before derivation of its
// connector shape.
type Definition struct {
	Kind        string
	Label       string
	Category    string
	Description string
	Sources     []Source
	Variadic    *Variadic
	Output      *Output
	Parameters  []Parameter
}

// Metadata is the immutable connector shape of one operator kind.
type Metadata struct {
	kind        string
	label       string
	category    string
	description string

	sources    []Source
	variadic   *Variadic
	output     *Output
	parameters []Parameter

	minInputs   int
	maxInputs   int
	mandatory   []string
	indexToName map[int]string
	nameToIndex map[string]int
}

// NewMetadata derives the connector shape of a definition. Every named
// source adds one slot to both bounds; a counted variadic group adds its
// count to both; an uncounted group adds one mandatory slot and lifts the
// upper bound.
func NewMetadata(def Definition) (*Metadata, error) {
	if def.Kind == "" {
		return nil, fmt.Errorf("%w: operator kind cannot be empty", ErrInvalidMetadata)
	}

	md := &Metadata{
		kind:        def.Kind,
		label:       def.Label,
		category:    def.Category,
		description: def.Description,
		output:      def.Output,
		indexToName: make(map[int]string),
		nameToIndex: make(map[string]int),
	}
	if md.label == "" {
		md.label = def.Kind
	}

	for i, src := range def.Sources {
		if src.Name == "" {
			return nil, fmt.Errorf("%w: operator '%s' has a source without a name", ErrInvalidMetadata, def.Kind)
		}
		if _, dup := md.nameToIndex[src.Name]; dup {
			return nil, fmt.Errorf("%w: operator '%s' declares source '%s' twice", ErrInvalidMetadata, def.Kind, src.Name)
		}
		md.sources = append(md.sources, src)
		md.indexToName[i] = src.Name
		md.nameToIndex[src.Name] = i
		if !src.Optional {
			md.mandatory = append(md.mandatory, src.Name)
		}
	}
	md.minInputs = len(md.sources)
	md.maxInputs = len(md.sources)

	if def.Variadic != nil {
		v := *def.Variadic
		if v.Name == "" {
			v.Name = DefaultVariadicName
		}
		md.variadic = &v
		if v.Count > 0 {
			md.minInputs += v.Count
			md.maxInputs += v.Count
		} else {
			md.minInputs++
			md.maxInputs = Unbounded
		}
		// The first slot of a group must always be fed; later slots are optional.
		md.mandatory = append(md.mandatory, md.InputName(len(md.sources)))
		for i := len(md.sources); i < md.minInputs; i++ {
			name := md.InputName(i)
			if _, dup := md.nameToIndex[name]; dup {
				return nil, fmt.Errorf("%w: operator '%s' variadic input '%s' collides with a named source", ErrInvalidMetadata, def.Kind, name)
			}
			md.indexToName[i] = name
			md.nameToIndex[name] = i
		}
	}

	seen := make(map[string]struct{}, len(def.Parameters))
	for _, p := range def.Parameters {
		if _, dup := seen[p.Name]; dup {
			return nil, fmt.Errorf("%w: operator '%s' declares parameter '%s' twice", ErrInvalidMetadata, def.Kind, p.Name)
		}
		seen[p.Name] = struct{}{}
		md.parameters = append(md.parameters, p)
	}

	if err := md.check(); err != nil {
		return nil, err
	}
	return md, nil
}

// check enforces the connector invariants.
func (m *Metadata) check() error {
	if m.maxInputs != Unbounded && m.minInputs > m.maxInputs {
		return fmt.Errorf("%w: operator '%s' min inputs %d exceed max inputs %d", ErrInvalidMetadata, m.kind, m.minInputs, m.maxInputs)
	}
	for i := 0; i < m.minInputs; i++ {
		if _, ok := m.indexToName[i]; !ok {
			return fmt.Errorf("%w: operator '%s' input %d has no name", ErrInvalidMetadata, m.kind, i)
		}
	}
	return nil
}

func (m *Metadata) Kind() string        { return m.kind }
func (m *Metadata) Label() string       { return m.label }
func (m *Metadata) Category() string    { return m.category }
func (m *Metadata) Description() string { return m.description }

// MinInputs is the number of connector slots a node of this kind always shows.
func (m *Metadata) MinInputs() int { return m.minInputs }

// MaxInputs is the upper bound of connector slots, or Unbounded.
func (m *Metadata) MaxInputs() int { return m.maxInputs }

// IsVariadic reports whether the operator accepts an open-ended number of inputs.
func (m *Metadata) IsVariadic() bool { return m.maxInputs == Unbounded }

// HasFixedInputs reports whether the number of inputs never changes.
func (m *Metadata) HasFixedInputs() bool { return m.maxInputs == m.minInputs }

// HasInputs reports whether the operator takes at least one input.
func (m *Metadata) HasInputs() bool { return m.minInputs > 0 }

// HasOutput reports whether the operator produces a product.
func (m *Metadata) HasOutput() bool { return m.output != nil }

// VariadicStart is the first index of the dense, order-preserving variadic
// region. It is -1 for operators of fixed arity.
func (m *Metadata) VariadicStart() int {
	if !m.IsVariadic() {
		return -1
	}
	if m.minInputs == 0 {
		return 0
	}
	return m.minInputs - 1
}

// MandatoryInputs returns the names that must be connected for a node to be complete.
func (m *Metadata) MandatoryInputs() []string {
	out := make([]string, len(m.mandatory))
	copy(out, m.mandatory)
	return out
}

// IndexToName returns a copy of the slot index to input name mapping for the
// slots every node of this kind shows.
func (m *Metadata) IndexToName() map[int]string {
	out := make(map[int]string, len(m.indexToName))
	for k, v := range m.indexToName {
		out[k] = v
	}
	return out
}

// NameToIndex returns a copy of the input name to slot index mapping.
func (m *Metadata) NameToIndex() map[string]int {
	out := make(map[string]int, len(m.nameToIndex))
	for k, v := range m.nameToIndex {
		out[k] = v
	}
	return out
}

// InputName returns the logical name of the input at the given slot. Slots
// past the named sources belong to the variadic group and are named
// `<group>`, `<group>.1`, `<group>.2`, ...
func (m *Metadata) InputName(index int) string {
	if name, ok := m.indexToName[index]; ok {
		return name
	}
	group := DefaultVariadicName
	if m.variadic != nil {
		group = m.variadic.Name
	}
	local := index - len(m.sources)
	if local <= 0 {
		return group
	}
	return group + "." + strconv.Itoa(local)
}

// InputIndex returns the slot of the named input, or -1 if no slot carries that name.
func (m *Metadata) InputIndex(name string) int {
	if idx, ok := m.nameToIndex[name]; ok {
		return idx
	}
	if m.variadic == nil || !m.IsVariadic() {
		return -1
	}
	prefix := m.variadic.Name + "."
	if !strings.HasPrefix(name, prefix) {
		return -1
	}
	local, err := strconv.Atoi(strings.TrimPrefix(name, prefix))
	if err != nil || local < 1 {
		return -1
	}
	return len(m.sources) + local
}

// IsInputOptional reports whether the input at the given slot may stay unconnected.
func (m *Metadata) IsInputOptional(index int) bool {
	name := m.InputName(index)
	for _, mandatory := range m.mandatory {
		if mandatory == name {
			return false
		}
	}
	return true
}

// InputDescription returns the declared description of the input at the given slot.
func (m *Metadata) InputDescription(index int) string {
	if index >= 0 && index < len(m.sources) {
		return m.sources[index].Description
	}
	if m.variadic != nil && index >= len(m.sources) {
		return m.variadic.Description
	}
	return ""
}

// OutputDescription returns the declared description of the operator's output.
func (m *Metadata) OutputDescription() string {
	if m.output == nil {
		return ""
	}
	return m.output.Description
}

// Parameters returns the operator's parameter schema in declaration order.
func (m *Metadata) Parameters() []Parameter {
	out := make([]Parameter, len(m.parameters))
	copy(out, m.parameters)
	return out
}

// Parameter looks up a single parameter definition by name.
func (m *Metadata) Parameter(name string) (Parameter, bool) {
	for _, p := range m.parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}
