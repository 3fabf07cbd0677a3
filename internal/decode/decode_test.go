package decode

import "testing"

func TestRegistryBuiltins(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"ascii8", "ascii7", "rawbinary", "baudot", "callerid", "uic751-ground", "uic751-train"} {
		if !r.Exists(name) {
			t.Errorf("registry missing built-in %q", name)
		}
		d, err := r.Create(name)
		if err != nil {
			t.Errorf("Create(%q) error: %v", name, err)
			continue
		}
		d.Reset()
	}
}

func TestRegistryUnknownName(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Create("nonexistent"); err == nil {
		t.Error("expected error creating unregistered decoder")
	}
}
