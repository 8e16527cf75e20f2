package checkpoints

import (
	"testing"
)

func TestFileStorePutGet(t *testing.T) {
	store := NewFileStore(t.TempDir())
	defer store.Close()

	data := []byte(`{"q": {}}`)
	if err := store.Put("run1/sac/run_0", data); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	got, err := store.Get("run1/sac/run_0")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("expected %s, got %s", data, got)
	}
}

func TestFileStoreGetMissing(t *testing.T) {
	store := NewFileStore(t.TempDir())
	defer store.Close()

	if _, err := store.Get("nope"); err == nil {
		t.Errorf("expected an error for a missing checkpoint")
	}
}

func TestFileStoreList(t *testing.T) {
	store := NewFileStore(t.TempDir())
	defer store.Close()

	keys, err := store.List("")
	if err != nil {
		t.Fatalf("list on an empty store failed: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("expected no keys, got %v", keys)
	}

	store.Put("run1/sac/run_0", []byte("{}"))
	store.Put("run1/maddpg/run_0", []byte("{}"))
	store.Put("run2/sac/run_0", []byte("{}"))

	keys, err = store.List("run1/")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(keys) != 2 {
		t.Errorf("expected 2 keys with prefix run1/, got %v", keys)
	}
	for _, k := range keys {
		if k != "run1/sac/run_0" && k != "run1/maddpg/run_0" {
			t.Errorf("unexpected key %s", k)
		}
	}
}
