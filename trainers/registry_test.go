package trainers

import (
	"testing"

	"github.com/aeolab/windfarm-rl-train/types"
)

func TestRegistryNew(t *testing.T) {
	r := NewRegistry()
	r.Register("random", func() (types.Trainer, error) {
		return types.NewRandomTrainer(), nil
	})

	trainer, err := r.New("random")
	if err != nil {
		t.Fatalf("constructing registered trainer: %v", err)
	}
	if trainer.Name() != "random" {
		t.Errorf("unexpected trainer name %q", trainer.Name())
	}
}

func TestRegistryUnknownName(t *testing.T) {
	r := NewRegistry()
	r.Register("sac", func() (types.Trainer, error) {
		return NewSoftQTrainer(DefaultSoftQConfig()), nil
	})

	if _, err := r.New("ppo"); err == nil {
		t.Fatalf("expected an error for an unregistered trainer")
	}
}

func TestRegistryAvailableSorted(t *testing.T) {
	r := NewRegistry()
	ctor := func() (types.Trainer, error) { return types.NewRandomTrainer(), nil }
	r.Register("sac", ctor)
	r.Register("maddpg", ctor)
	r.Register("random", ctor)

	names := r.Available()
	want := []string{"maddpg", "random", "sac"}
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %v", len(want), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected %q at %d, got %q", want[i], i, names[i])
		}
	}
}
