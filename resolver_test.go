package sway

import (
	"reflect"
	"sync"
	"testing"
)

var (
	gaugeType = reflect.TypeOf(&gauge{})
	f64Type   = reflect.TypeOf(0.0)
)

func TestResolveGetterAndSetter(t *testing.T) {
	r := NewResolver()
	e := r.Resolve(gaugeType, "level", f64Type)
	if !e.Resolved() {
		t.Fatal("level should resolve")
	}
	if e.ValueType() != f64Type {
		t.Errorf("ValueType = %v, want float64", e.ValueType())
	}
	if !e.Getter.Resolved {
		t.Error("getter Level() should resolve")
	}

	g := &gauge{}
	if !e.Setter.Set(g, reflect.ValueOf(4.5)) || g.level != 4.5 {
		t.Errorf("Set: level = %v, want 4.5", g.level)
	}
	v, ok := e.Getter.Get(g)
	if !ok || v.Float() != 4.5 {
		t.Errorf("Get = %v, %v", v, ok)
	}
}

func TestResolveCachesDiscovery(t *testing.T) {
	r := NewResolver()
	r.Resolve(gaugeType, "level", f64Type)
	if got := r.Discoveries(); got != 2 {
		t.Fatalf("Discoveries = %d, want 2 (getter + setter)", got)
	}
	for i := 0; i < 10; i++ {
		r.Resolve(gaugeType, "level", f64Type)
	}
	if got := r.Discoveries(); got != 2 {
		t.Errorf("Discoveries after repeats = %d, want 2", got)
	}
}

func TestResolveFailureIsCached(t *testing.T) {
	r := NewResolver()
	for i := 0; i < 3; i++ {
		e := r.Resolve(gaugeType, "missing", f64Type)
		if e.Resolved() {
			t.Fatal("missing should not resolve")
		}
		if e.Setter.Set(&gauge{}, reflect.ValueOf(1.0)) {
			t.Fatal("unresolved setter should do nothing")
		}
		if _, ok := e.Getter.Get(&gauge{}); ok {
			t.Fatal("unresolved getter should do nothing")
		}
	}
	if got := r.Discoveries(); got != 2 {
		t.Errorf("Discoveries = %d, want 2", got)
	}
}

func TestResolveGetPrefixAndIntVariant(t *testing.T) {
	r := NewResolver()
	e := r.Resolve(gaugeType, "count", f64Type)
	if !e.Resolved() {
		t.Fatal("count should resolve through the int variant")
	}
	if e.ValueType().Kind() != reflect.Int {
		t.Errorf("ValueType = %v, want int", e.ValueType())
	}
	if !e.Getter.Resolved {
		t.Error("GetCount() should be found as the getter")
	}

	g := &gauge{}
	e.Setter.Set(g, reflect.ValueOf(2.6))
	if g.count != 3 {
		t.Errorf("count = %d, want 3 (rounded)", g.count)
	}
}

func TestResolveFloat32Variant(t *testing.T) {
	r := NewResolver()
	e := r.Resolve(gaugeType, "ratio", f64Type)
	if !e.Resolved() || e.ValueType().Kind() != reflect.Float32 {
		t.Fatalf("ratio: resolved=%v type=%v", e.Resolved(), e.ValueType())
	}
}

func TestResolveRejectsWrongShapes(t *testing.T) {
	r := NewResolver()
	tests := []string{
		"label", // getter only
		"pair",  // two-argument setter
		"",      // no name
	}
	for _, name := range tests {
		if r.Resolve(gaugeType, name, f64Type).Resolved() {
			t.Errorf("%q should not resolve a setter", name)
		}
	}
	if !r.Resolve(gaugeType, "only", f64Type).Resolved() {
		t.Error("setter-only property should resolve")
	}
	if r.Resolve(gaugeType, "only", f64Type).Getter.Resolved {
		t.Error("setter-only property has no getter")
	}
	if r.Resolve(nil, "level", f64Type).Resolved() {
		t.Error("nil host type should not resolve")
	}
}

func TestResolveConcurrent(t *testing.T) {
	r := NewResolver()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if !r.Resolve(gaugeType, "level", f64Type).Resolved() {
					t.Error("level should resolve")
					return
				}
			}
		}()
	}
	wg.Wait()
	if got := r.Discoveries(); got != 2 {
		t.Errorf("Discoveries = %d, want 2", got)
	}
}

func TestCapitalize(t *testing.T) {
	tests := map[string]string{
		"x":            "X",
		"translationX": "TranslationX",
		"Alpha":        "Alpha",
		"élan":         "Élan",
	}
	for in, want := range tests {
		if got := capitalize(in); got != want {
			t.Errorf("capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}
