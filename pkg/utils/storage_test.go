package utils

import "testing"

func TestOpenStorage_DefaultAppName(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	m, err := OpenStorage("")
	if err != nil {
		t.Fatalf("OpenStorage: %v", err)
	}
	if m == nil {
		t.Fatal("OpenStorage returned nil manager without error")
	}
	if err := m.SaveObjectProp("probe", "value", []byte("ok")); err != nil {
		t.Fatalf("SaveObjectProp: %v", err)
	}
	data, err := m.LoadObjectProp("probe", "value")
	if err != nil {
		t.Fatalf("LoadObjectProp: %v", err)
	}
	if string(data) != "ok" {
		t.Errorf("LoadObjectProp: got %q, want %q", data, "ok")
	}
}

func TestEnsureStorageDir_Desktop(t *testing.T) {
	if err := EnsureStorageDir(AppName); err != nil {
		t.Errorf("EnsureStorageDir: got %v, want nil", err)
	}
}
