package sway

import (
	"math"
	"reflect"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Role selects the getter or setter half of an accessor.
type Role uint8

const (
	RoleGetter Role = iota
	RoleSetter
)

// Accessor is one discovered method. The zero Accessor is the unresolved
// sentinel: Resolved is false and both calls are no-ops.
type Accessor struct {
	method reflect.Method
	// Type is the value type the method takes (setter) or returns (getter).
	// For setters it is the variant that matched, which may differ from the
	// requested type.
	Type     reflect.Type
	Resolved bool
}

// unresolved is cached for failed lookups so discovery runs once.
var unresolved = &Accessor{}

// Get calls the getter on target and returns its result.
func (a *Accessor) Get(target any) (reflect.Value, bool) {
	if !a.Resolved {
		return reflect.Value{}, false
	}
	out := a.method.Func.Call([]reflect.Value{reflect.ValueOf(target)})
	return out[0], true
}

// Set converts v to the setter's parameter type and calls it on target.
func (a *Accessor) Set(target any, v reflect.Value) bool {
	if !a.Resolved {
		return false
	}
	arg, ok := convertValue(v, a.Type)
	if !ok {
		return false
	}
	a.method.Func.Call([]reflect.Value{reflect.ValueOf(target), arg})
	return true
}

// AccessorEntry pairs the getter and setter found for one property name on
// one host type.
type AccessorEntry struct {
	Getter *Accessor
	Setter *Accessor
}

// Resolved reports whether a setter was found. Without one the property
// cannot be animated and its channel becomes a no-op.
func (e AccessorEntry) Resolved() bool {
	return e.Setter != nil && e.Setter.Resolved
}

// ValueType is the setter's parameter type, or nil when unresolved.
func (e AccessorEntry) ValueType() reflect.Type {
	if !e.Resolved() {
		return nil
	}
	return e.Setter.Type
}

type accessorKey struct {
	host reflect.Type
	name string
	role Role
}

// Resolver discovers accessor methods by property name and caches the
// result per (host type, name, role). Failed lookups are cached too. Entries
// are never evicted. A Resolver is safe for concurrent use.
type Resolver struct {
	mu          sync.RWMutex
	cache       map[accessorKey]*Accessor
	discoveries int
}

// NewResolver returns an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{cache: make(map[accessorKey]*Accessor)}
}

// DefaultResolver is the process-wide resolver used by name-bound channels.
var DefaultResolver = NewResolver()

// Resolve returns the accessors for name on hostType. valueType picks the
// setter parameter type tried first; numeric types fall back through their
// compatible variants.
func (r *Resolver) Resolve(hostType reflect.Type, name string, valueType reflect.Type) AccessorEntry {
	return AccessorEntry{
		Getter: r.lookup(hostType, name, RoleGetter, valueType),
		Setter: r.lookup(hostType, name, RoleSetter, valueType),
	}
}

// Discoveries returns how many cache misses ran method discovery.
func (r *Resolver) Discoveries() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.discoveries
}

func (r *Resolver) lookup(hostType reflect.Type, name string, role Role, valueType reflect.Type) *Accessor {
	key := accessorKey{host: hostType, name: name, role: role}

	r.mu.RLock()
	acc, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return acc
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if acc, ok := r.cache[key]; ok {
		return acc
	}
	r.discoveries++
	acc = discover(hostType, name, role, valueType)
	r.cache[key] = acc
	return acc
}

// discover looks for SetName(v) or Name() / GetName() on hostType.
func discover(hostType reflect.Type, name string, role Role, valueType reflect.Type) *Accessor {
	if hostType == nil || name == "" {
		return unresolved
	}
	exported := capitalize(name)

	if role == RoleGetter {
		for _, methodName := range []string{exported, "Get" + exported} {
			m, ok := hostType.MethodByName(methodName)
			if !ok || m.Type.NumIn() != 1 || m.Type.NumOut() != 1 {
				continue
			}
			return &Accessor{method: m, Type: m.Type.Out(0), Resolved: true}
		}
		return unresolved
	}

	m, ok := hostType.MethodByName("Set" + exported)
	if !ok || m.Type.NumIn() != 2 {
		return unresolved
	}
	param := m.Type.In(1)
	for _, variant := range typeVariants(valueType) {
		if param == variant {
			return &Accessor{method: m, Type: variant, Resolved: true}
		}
	}
	return unresolved
}

var (
	typeFloat64 = reflect.TypeFor[float64]()
	typeFloat32 = reflect.TypeFor[float32]()
	typeInt     = reflect.TypeFor[int]()
	typeInt32   = reflect.TypeFor[int32]()
	typeInt64   = reflect.TypeFor[int64]()
)

// typeVariants lists the parameter types accepted for a value type, most
// preferred first.
func typeVariants(t reflect.Type) []reflect.Type {
	switch t {
	case typeFloat64:
		return []reflect.Type{typeFloat64, typeFloat32, typeInt, typeInt64, typeInt32}
	case typeFloat32:
		return []reflect.Type{typeFloat32, typeFloat64, typeInt, typeInt64, typeInt32}
	case typeInt:
		return []reflect.Type{typeInt, typeInt64, typeInt32, typeFloat64, typeFloat32}
	case typeInt64:
		return []reflect.Type{typeInt64, typeInt, typeInt32, typeFloat64, typeFloat32}
	case nil:
		return nil
	}
	return []reflect.Type{t}
}

// convertValue converts v to t, rounding when narrowing a float to an int.
func convertValue(v reflect.Value, t reflect.Type) (reflect.Value, bool) {
	if !v.IsValid() {
		return reflect.Value{}, false
	}
	if v.Type() == t {
		return v, true
	}
	if isFloat(v.Kind()) && isInt(t.Kind()) {
		return reflect.ValueOf(math.Round(v.Float())).Convert(t), true
	}
	if !v.Type().ConvertibleTo(t) {
		return reflect.Value{}, false
	}
	return v.Convert(t), true
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

// capitalize upper-cases the first rune: "translationX" -> "TranslationX".
func capitalize(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}
