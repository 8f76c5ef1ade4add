package evidence

import (
	"encoding/json"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Bool
// ---------------------------------------------------------------------------

func TestBool_Unmarshal(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		known bool
		value bool
	}{
		{"native true", `true`, true, true},
		{"native false", `false`, true, false},
		{"number zero", `0`, true, false},
		{"number one", `1`, true, true},
		{"enum two", `2`, true, true},
		{"string True", `"True"`, true, true},
		{"string False", `"False"`, true, false},
		{"string false lower", `"false"`, true, false},
		{"string zero", `"0"`, true, false},
		{"string one", `"1"`, true, true},
		{"string NotConfigured", `"NotConfigured"`, true, true},
		{"empty string", `""`, false, false},
		{"null", `null`, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Bool
			if err := json.Unmarshal([]byte(tt.raw), &b); err != nil {
				t.Fatalf("Unmarshal(%s): %v", tt.raw, err)
			}
			if b.Known() != tt.known {
				t.Errorf("Known() = %v, want %v", b.Known(), tt.known)
			}
			if tt.known && b.True() != tt.value {
				t.Errorf("True() = %v, want %v", b.True(), tt.value)
			}
		})
	}
}

func TestBool_UnmarshalGarbage(t *testing.T) {
	var b Bool
	if err := json.Unmarshal([]byte(`{"nested":true}`), &b); err == nil {
		t.Error("expected error for object value")
	}
}

func TestBool_FalseOnlyWhenExplicit(t *testing.T) {
	var unset Bool
	if unset.False() {
		t.Error("unset Bool should not report False()")
	}
	if !FalseBool().False() {
		t.Error("FalseBool() should report False()")
	}
	if TrueBool().False() {
		t.Error("TrueBool() should not report False()")
	}
}

func TestBool_Marshal(t *testing.T) {
	tests := []struct {
		name string
		b    Bool
		want string
	}{
		{"unset", Bool{}, `null`},
		{"true", TrueBool(), `true`},
		{"false", FalseBool(), `false`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.b)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDefenderData_OmitsUnsetFields(t *testing.T) {
	var d DefenderData
	if err := json.Unmarshal([]byte(`{"AntivirusEnabled":true}`), &d); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !d.AntivirusEnabled.True() {
		t.Error("AntivirusEnabled should decode true")
	}
	if d.RealTimeProtectionEnabled.Known() {
		t.Error("RealTimeProtectionEnabled should stay unset")
	}

	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(out), "AntivirusEnabled") {
		t.Errorf("marshal should keep the reported field, got %s", out)
	}
	if strings.Contains(string(out), "RealTimeProtectionEnabled") {
		t.Errorf("marshal should omit unset fields, got %s", out)
	}
}

func TestDefenderData_EmptyMarshalsAsEmptyObject(t *testing.T) {
	out, err := json.Marshal(DefenderData{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != `{}` {
		t.Errorf("empty DefenderData = %s, want {}", out)
	}
}

// ---------------------------------------------------------------------------
// Text
// ---------------------------------------------------------------------------

func TestText_Unmarshal(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"string", `"7/10/2021 12:00:00 AM"`, "7/10/2021 12:00:00 AM"},
		{"null", `null`, ""},
		{"number", `45`, "45"},
		{"fractional number", `45.5`, "45.5"},
		{"bool", `true`, "true"},
		{"datetime wrapper", `{"value":"\/Date(1625875200000)\/","DateTime":"Saturday, July 10, 2021"}`, "Saturday, July 10, 2021"},
		{"value-only wrapper", `{"value":"2021-07-10"}`, "2021-07-10"},
		{"opaque object", `{"Ticks": 1}`, `{"Ticks":1}`},
		{"array", `[1, 2]`, `[1,2]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Text
			if err := json.Unmarshal([]byte(tt.raw), &v); err != nil {
				t.Fatalf("Unmarshal(%s): %v", tt.raw, err)
			}
			if v.String() != tt.want {
				t.Errorf("Text = %q, want %q", v, tt.want)
			}
		})
	}
}

func TestText_Empty(t *testing.T) {
	var v Text
	if !v.Empty() {
		t.Error("zero Text should be empty")
	}
	v = "x"
	if v.Empty() {
		t.Error("non-zero Text should not be empty")
	}
}

// ---------------------------------------------------------------------------
// CoerceArray
// ---------------------------------------------------------------------------

func TestCoerceArray(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"single object wrapped", `{"Name":"Domain"}`, `[{"Name":"Domain"}]`},
		{"array unchanged", `[{"Name":"Domain"},{"Name":"Public"}]`, `[{"Name":"Domain"},{"Name":"Public"}]`},
		{"leading whitespace", "  \n{\"a\":1}", `[{"a":1}]`},
		{"empty input", ``, ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(CoerceArray([]byte(tt.raw)))
			if got != tt.want {
				t.Errorf("CoerceArray(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCoerceArray_DecodesSingleton(t *testing.T) {
	var profiles []FirewallProfile
	raw := CoerceArray([]byte(`{"Name":"Domain","Enabled":true}`))
	if err := json.Unmarshal(raw, &profiles); err != nil {
		t.Fatalf("Unmarshal coerced singleton: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("profile count = %d, want 1", len(profiles))
	}
	if profiles[0].Name != "Domain" || !profiles[0].Enabled.True() {
		t.Errorf("profile = %+v, want Domain/enabled", profiles[0])
	}
}
