package scripts

import "testing"

func TestCategorize(t *testing.T) {
	cases := []struct {
		script string
		want   string
	}{
		{"Trouble Brewing", CategoryNormal},
		{"trouble brewing", CategoryNormal},
		{"  Bad Moon Rising  ", CategoryNormal},
		{"Sects & Violets", CategoryNormal},
		{"Trouble in Violets", CategoryNormal},
		{"Trouble in Legion", CategoryNormal},
		{"Hide & Seek", CategoryNormal},
		{"Trouble Brewing on Expert Mode", CategoryNormal},
		{"Trained Killer", CategoryNormal},
		{"Irrational Behavior", CategoryNormal},
		{"Binary Supernovae", CategoryNormal},
		{"Everybody Can Play", CategoryNormal},
		{"Moonlit Hollow", CategoryTeensyville},
		{"", CategoryTeensyville},
	}
	for _, c := range cases {
		if got := Categorize(c.script); got != c.want {
			t.Errorf("Categorize(%q) = %s, want %s", c.script, got, c.want)
		}
	}
}

func TestRoleType(t *testing.T) {
	cases := []struct {
		role string
		want string
	}{
		{"Imp", RoleTypeDemon},
		{"imp", RoleTypeDemon},
		{"Fortune Teller", RoleTypeTownsfolk},
		{"fortune_teller", RoleTypeTownsfolk},
		{"Scarlet Woman", RoleTypeMinion},
		{"Recluse", RoleTypeOutsider},
		{"Gunslinger", RoleTypeTraveller},
		{"Storm Catcher", RoleTypeUnknown},
		{"", RoleTypeUnknown},
	}
	for _, c := range cases {
		if got := RoleType(c.role); got != c.want {
			t.Errorf("RoleType(%q) = %s, want %s", c.role, got, c.want)
		}
	}
}

func TestRoleType_DashUnderscoreFallback(t *testing.T) {
	// Logs spell hyphenated roles both ways; a miss retries with the
	// separators swapped.
	cases := []struct {
		role string
		want string
	}{
		{"Pit-Hag", RoleTypeMinion},
		{"Pit_Hag", RoleTypeMinion},
		{"Al-Hadikhia", RoleTypeDemon},
		{"Al_Hadikhia", RoleTypeDemon},
	}
	for _, c := range cases {
		if got := RoleType(c.role); got != c.want {
			t.Errorf("RoleType(%q) = %s, want %s", c.role, got, c.want)
		}
	}
}

func TestNormalizeRole(t *testing.T) {
	if got := NormalizeRole("  Fortune Teller "); got != "fortune_teller" {
		t.Errorf("NormalizeRole = %q", got)
	}
}
