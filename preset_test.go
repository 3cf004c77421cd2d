package luna_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	luna "github.com/AtlasAudioDesigns/Luna"
)

func TestBankJSONKeepsInsertionOrder(t *testing.T) {
	var bank luna.Bank
	names := []string{"zeta", "alpha", "mid"}
	for i, name := range names {
		bank.Put(name, luna.Preset{
			Slot:   "1" + string(rune('A'+i)),
			Values: map[string]float64{"DECAY": float64(i * 10)},
		})
	}
	data, err := json.Marshal(&bank)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	text := string(data)
	if strings.Index(text, `"zeta"`) > strings.Index(text, `"alpha"`) ||
		strings.Index(text, `"alpha"`) > strings.Index(text, `"mid"`) {
		t.Fatalf("marshaled document lost insertion order: %s", text)
	}
	var reloaded luna.Bank
	if err := json.Unmarshal(data, &reloaded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got := reloaded.Names(); !reflect.DeepEqual(got, names) {
		t.Fatalf("names after round trip got %v, expected %v", got, names)
	}
	p, ok := reloaded.Get("alpha")
	if !ok || p.Slot != "1B" || p.Values["DECAY"] != 10 {
		t.Fatalf("alpha after round trip got %+v, expected slot 1B DECAY 10", p)
	}
}

func TestBankPutOverwriteKeepsPosition(t *testing.T) {
	var bank luna.Bank
	bank.Put("a", luna.Preset{Values: map[string]float64{"DECAY": 1}})
	bank.Put("b", luna.Preset{Values: map[string]float64{"DECAY": 2}})
	bank.Put("a", luna.Preset{Values: map[string]float64{"DECAY": 3}})
	if got := bank.Names(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("names got %v, expected [a b]", got)
	}
	p, _ := bank.Get("a")
	if p.Values["DECAY"] != 3 {
		t.Fatalf("overwritten preset DECAY got %v, expected 3", p.Values["DECAY"])
	}
}

func TestBankDeleteAndRename(t *testing.T) {
	var bank luna.Bank
	bank.Put("a", luna.Preset{})
	bank.Put("b", luna.Preset{})
	bank.Put("c", luna.Preset{})
	if !bank.Delete("b") {
		t.Fatal("Delete b reported not found")
	}
	if bank.Delete("b") {
		t.Fatal("second Delete b reported found")
	}
	bank.Rename("a", "z")
	if got := bank.Names(); !reflect.DeepEqual(got, []string{"z", "c"}) {
		t.Fatalf("names got %v, expected [z c]", got)
	}
}

func TestPresetCopyIsDeep(t *testing.T) {
	p := luna.Preset{
		Values: map[string]float64{"DECAY": 50},
		Modulation: &luna.Modulation{
			Mod: map[string]float64{"SPEED": 25},
		},
	}
	c := p.Copy()
	c.Values["DECAY"] = 0
	c.Modulation.Mod["SPEED"] = 0
	if p.Values["DECAY"] != 50 || p.Modulation.Mod["SPEED"] != 25 {
		t.Fatalf("copy shares state with the original: %+v", p)
	}
}

func TestRigDefaults(t *testing.T) {
	defaults := luna.RigDefaults()
	if len(defaults) != len(luna.RigParams) {
		t.Fatalf("got %d defaults, expected %d", len(defaults), len(luna.RigParams))
	}
	if got := defaults["DAMPING"]; got != 25.4 {
		t.Fatalf("DAMPING default got %v, expected 25.4", got)
	}
	if got := defaults["WEIGHT"]; got != 80.6 {
		t.Fatalf("WEIGHT default got %v, expected 80.6", got)
	}
}

func TestNormalizeNameAndClamp(t *testing.T) {
	if got := luna.NormalizeName("  pre-delay "); got != "PRE-DELAY" {
		t.Fatalf("NormalizeName got %q, expected PRE-DELAY", got)
	}
	if got := luna.Clamp(-1); got != 0 {
		t.Fatalf("Clamp(-1) got %v, expected 0", got)
	}
	if got := luna.Clamp(100.5); got != 100 {
		t.Fatalf("Clamp(100.5) got %v, expected 100", got)
	}
	if got := luna.Clamp(42.5); got != 42.5 {
		t.Fatalf("Clamp(42.5) got %v, expected 42.5", got)
	}
}

func TestUnitDefaults(t *testing.T) {
	for _, key := range luna.UnitKeys {
		defaults := luna.UnitDefaults(key)
		if len(defaults) != len(luna.UnitParams[key]) {
			t.Fatalf("unit %s got %d defaults, expected %d", key, len(defaults), len(luna.UnitParams[key]))
		}
		for name, v := range defaults {
			if v != 0 {
				t.Fatalf("unit %s parameter %s default got %v, expected 0", key, name, v)
			}
		}
	}
}
