package vdom

// Component is anything that can render a description.
//
// Render returns a *Desc, a string (rendered as text) or nil.
type Component interface {
	Render() any
}

// Lifecycle hooks. A component implements the ones it needs. Hooks are
// invoked synchronously on the rendering goroutine; a hook that has to wait
// on something should start its own goroutine.
type (
	Mounter   interface{ Mounted() }
	Resumer   interface{ Resumed() }
	Updater   interface{ Updated() }
	Destroyer interface{ Destroyed() }
)

// Host receives state-change notifications from components. The application
// controller implements it.
type Host interface {
	NotifyStateChange(c Component)
}

// ComponentType is a component constructor. Its pointer identifies the
// component across renders.
type ComponentType struct {
	name string
	ctor func(Props) Component
}

// Define registers a component constructor under a display name.
func Define(name string, ctor func(Props) Component) *ComponentType {
	return &ComponentType{name: name, ctor: ctor}
}

// Name returns the display name given to Define.
func (t *ComponentType) Name() string {
	return t.name
}

// New constructs an instance and binds its Base, if any, to props.
func (t *ComponentType) New(props Props) Component {
	c := t.ctor(props)
	if b := baseOf(c); b != nil {
		b.props = props
		b.self = c
	}
	return c
}

// State is component-local data.
type State map[string]any

// Base carries the properties, state and refs of a component. Embed it.
type Base struct {
	props Props
	state State
	host  Host
	self  Component
	refs  []*Ref
}

func (b *Base) base() *Base { return b }

type baser interface{ base() *Base }

func baseOf(c Component) *Base {
	if bc, ok := c.(baser); ok {
		return bc.base()
	}
	return nil
}

// Props returns the properties of the latest render.
func (b *Base) Props() Props {
	return b.props
}

// Prop returns a single property.
func (b *Base) Prop(key string) any {
	return b.props[key]
}

// Children returns the descriptions passed between the component's tags.
func (b *Base) Children() []any {
	children, _ := b.props[ChildrenProp].([]any)
	return children
}

// State returns the current state.
func (b *Base) State() State {
	return b.state
}

// InitState sets the initial state without requesting a render. Call it
// from the constructor.
func (b *Base) InitState(s State) {
	b.state = s
}

// SetState replaces the state and asks the host to re-render.
func (b *Base) SetState(s State) {
	b.state = s
	if b.host != nil {
		b.host.NotifyStateChange(b.self)
	}
}

// NewRef creates an output slot recorded on the component for the current
// render. Pass it as the "ref" attribute of an element.
func (b *Base) NewRef() *Ref {
	r := &Ref{}
	b.refs = append(b.refs, r)
	return r
}

// Attach connects c to host. Components without a Base are left untouched.
func Attach(c Component, host Host) {
	if b := baseOf(c); b != nil {
		b.host = host
	}
}

// SetProps points c at a new property set.
func SetProps(c Component, props Props) {
	if b := baseOf(c); b != nil {
		b.props = props
	}
}

// StateOf returns c's state, or nil for components without a Base.
func StateOf(c Component) State {
	if b := baseOf(c); b != nil {
		return b.state
	}
	return nil
}

// BeginRender clears the refs recorded by the previous render.
func BeginRender(c Component) {
	if b := baseOf(c); b != nil {
		b.refs = nil
	}
}

// RefsOf returns the refs created during the most recent render.
func RefsOf(c Component) []*Ref {
	if b := baseOf(c); b != nil {
		return b.refs
	}
	return nil
}
