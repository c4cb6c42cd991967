package motion

import (
	"errors"
	"testing"
)

func TestSettingsDefaults(t *testing.T) {
	s := NewSettings()
	s.SetDefault(KeyDuration, 1.0)
	if got := s.Float(KeyDuration); got != 1 {
		t.Errorf("Float(default) = %v, want 1", got)
	}
	if s.Has(KeyDuration) {
		t.Error("Has should ignore defaults")
	}
	s.SetFloat(KeyDuration, 2.5)
	if got := s.Float(KeyDuration); got != 2.5 {
		t.Errorf("Float = %v, want 2.5", got)
	}
	s.Delete(KeyDuration)
	if got := s.Float(KeyDuration); got != 1 {
		t.Errorf("Float after Delete = %v, want 1", got)
	}
}

func TestSettingsCoercion(t *testing.T) {
	s := SettingsFrom(map[string]any{
		"int_as_float": 3.0,
		"float_as_int": 7,
		"bool_str":     "true",
		"num_str":      "12",
		"list":         []any{"A", "B"},
	})
	if got := s.Int("int_as_float"); got != 3 {
		t.Errorf("Int = %d, want 3", got)
	}
	if got := s.Float("float_as_int"); got != 7 {
		t.Errorf("Float = %v, want 7", got)
	}
	if !s.Bool("bool_str") {
		t.Error(`Bool("true") = false`)
	}
	if got := s.Int("num_str"); got != 12 {
		t.Errorf("Int(\"12\") = %d, want 12", got)
	}
	if got := s.Strings("list"); len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("Strings = %v, want [A B]", got)
	}
	if got := s.Strings("missing"); got != nil {
		t.Errorf("Strings(missing) = %v, want nil", got)
	}
	if got := s.String("missing"); got != "" {
		t.Errorf("String(missing) = %q, want empty", got)
	}
}

func TestSettingsValuesAreCopies(t *testing.T) {
	s := NewSettings()
	list := []string{"A"}
	s.SetStrings("k", list)
	list[0] = "B"
	if got := s.Strings("k"); got[0] != "A" {
		t.Errorf("SetStrings kept a reference: %v", got)
	}
	v := s.Values()
	v["other"] = 1
	if s.Has("other") {
		t.Error("Values should return a copy")
	}
}

type fakeStore struct {
	data map[string]map[string]any
	err  error
}

func (f *fakeStore) Load(scope string) (map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.data[scope], nil
}

func (f *fakeStore) Save(scope string, values map[string]any) error {
	if f.err != nil {
		return f.err
	}
	if f.data == nil {
		f.data = map[string]map[string]any{}
	}
	f.data[scope] = values
	return nil
}

func TestSettingsLoadSave(t *testing.T) {
	st := &fakeStore{}
	s := NewSettings()
	s.SetBool(KeyMotionEnd, true)
	if err := s.SaveTo(st, "m"); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	got := NewSettings()
	if err := got.LoadFrom(st, "m"); err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if !got.Bool(KeyMotionEnd) {
		t.Error("motion_end not restored")
	}
}

func TestSettingsStoreErrorsWrapped(t *testing.T) {
	boom := errors.New("boom")
	st := &fakeStore{err: boom}
	s := NewSettings()
	if err := s.LoadFrom(st, "m"); !errors.Is(err, boom) {
		t.Errorf("LoadFrom error = %v, want wrapped boom", err)
	}
	if err := s.SaveTo(st, "m"); !errors.Is(err, boom) {
		t.Errorf("SaveTo error = %v, want wrapped boom", err)
	}
}
