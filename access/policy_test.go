package access

import (
	"testing"

	"github.com/calcprep/calcprep-api/models"
)

func TestDecideTable(t *testing.T) {
	cases := []struct {
		role    Role
		premium bool
		want    Decision
	}{
		{RoleAnonymous, false, Allow},
		{RoleAnonymous, true, Deny},
		{RoleFree, false, Allow},
		{RoleFree, true, Deny},
		{RolePremium, false, Allow},
		{RolePremium, true, Allow},
	}
	for _, c := range cases {
		got := Decide(c.role, c.premium)
		if got != c.want {
			t.Fatalf("Decide(%s, %v) = %s, want %s", c.role, c.premium, got, c.want)
		}
		// Same inputs must always produce the same output.
		for i := 0; i < 3; i++ {
			if again := Decide(c.role, c.premium); again != got {
				t.Fatalf("Decide(%s, %v) not deterministic: %s then %s", c.role, c.premium, got, again)
			}
		}
	}
}

func TestDecideUnknownRoleFailsClosed(t *testing.T) {
	if Decide(Role("superuser"), true) != Deny {
		t.Fatalf("unknown role must not unlock premium content")
	}
	if Decide(Role(""), true) != Deny {
		t.Fatalf("empty role must not unlock premium content")
	}
}

func TestRoleFor(t *testing.T) {
	if got := RoleFor(nil); got != RoleAnonymous {
		t.Fatalf("RoleFor(nil) = %s, want anonymous", got)
	}
	if got := RoleFor(&models.User{Role: models.RolePremium}); got != RolePremium {
		t.Fatalf("RoleFor(premium user) = %s", got)
	}
	if got := RoleFor(&models.User{Role: models.RoleFree}); got != RoleFree {
		t.Fatalf("RoleFor(free user) = %s", got)
	}
	if got := RoleFor(&models.User{Role: models.Role("corrupt")}); got != RoleFree {
		t.Fatalf("RoleFor(corrupt role) = %s, want free", got)
	}
}
