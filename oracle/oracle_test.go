package oracle

import "testing"

type fixed map[string][]string

func (f fixed) IsKnownProperty(name string) bool {
	_, ok := f[name]
	return ok
}

func (f fixed) CompletionsForProperty(prefix string) []string {
	return nil
}

func (f fixed) LegalValues(name string) ([]string, bool) {
	v, ok := f[name]
	return v, ok && len(v) > 0
}

func TestIsLegalValue(t *testing.T) {
	o := fixed{"display": {"block", "none"}, "border": nil}
	if !IsLegalValue(o, "display", "none") {
		t.Errorf("expected 'none' to be legal for display")
	}
	if IsLegalValue(o, "display", "None") {
		t.Errorf("expected value comparison to be case-sensitive")
	}
	if IsLegalValue(o, "border", "1px") {
		t.Errorf("expected border to have no enumerated values")
	}
	if IndexOf([]string{"a", "b"}, "b") != 1 {
		t.Errorf("expected index of 'b' to be 1")
	}
}
