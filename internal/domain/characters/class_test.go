package characters

import (
	"errors"
	"testing"
)

func TestParseClass(t *testing.T) {
	tests := []struct {
		raw     string
		want    Class
		wantErr bool
	}{
		{raw: "warrior", want: ClassWarrior},
		{raw: "Archer", want: ClassArcher},
		{raw: " mage ", want: ClassMage},
		{raw: "paladin", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "class_warrior", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseClass(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseClass(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnknownClass) {
				t.Errorf("ParseClass(%q) error = %v, want ErrUnknownClass", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParseClass(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestStatsFor(t *testing.T) {
	want := map[Class]Stats{
		ClassWarrior: {HP: 150, Attack: 25, Defense: 15},
		ClassArcher:  {HP: 100, Attack: 30, Defense: 8},
		ClassMage:    {HP: 80, Attack: 35, Defense: 5},
	}
	for class, stats := range want {
		if got := StatsFor(class); got != stats {
			t.Errorf("StatsFor(%s) = %+v, want %+v", class, got, stats)
		}
	}
}

func TestClassesOrder(t *testing.T) {
	got := Classes()
	want := []Class{ClassArcher, ClassWarrior, ClassMage}
	if len(got) != len(want) {
		t.Fatalf("Classes() returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Class != want[i] {
			t.Errorf("Classes()[%d] = %s, want %s", i, got[i].Class, want[i])
		}
	}

	got[0].Name = "changed"
	if Classes()[0].Name == "changed" {
		t.Error("Classes() exposes the catalog backing array")
	}
}

func TestClassLabel(t *testing.T) {
	if got := ClassWarrior.Label(); got != "🗡 Warrior" {
		t.Errorf("Label() = %q", got)
	}
}

func TestClassInfoLabel(t *testing.T) {
	for _, info := range Classes() {
		if got, want := info.Label(), info.Class.Label(); got != want {
			t.Errorf("%s: ClassInfo.Label() = %q, Class.Label() = %q", info.Class, got, want)
		}
	}
	if got := ClassMage.Info().Label(); got != "🔮 Mage" {
		t.Errorf("Label() = %q", got)
	}
}
