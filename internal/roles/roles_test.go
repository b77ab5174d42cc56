package roles

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    Role
		wantErr bool
	}{
		{name: "root", in: "root", want: Root},
		{name: "master", in: "master", want: Master},
		{name: "agent", in: "agent", want: Agent},
		{name: "player", in: "player", want: Player},
		{name: "unknown", in: "superadmin", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "case_sensitive", in: "Root", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(tt.in)

			if tt.wantErr {
				if !errors.Is(err, ErrUnknownRole) {
					t.Fatalf("want ErrUnknownRole, got %v", err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Fatalf("want %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSeniorityOrder(t *testing.T) {
	t.Parallel()

	ordered := []Role{Root, Master, Agent, Player}

	for i := 0; i < len(ordered); i++ {
		for j := 0; j < len(ordered); j++ {
			senior := ordered[i].Outranks(ordered[j])
			if senior != (i < j) {
				t.Fatalf("%s.Outranks(%s): want %v, got %v", ordered[i], ordered[j], i < j, senior)
			}

			// Creation follows the same strict order.
			if ordered[i].CanCreate(ordered[j]) != (i < j) {
				t.Fatalf("%s.CanCreate(%s): want %v", ordered[i], ordered[j], i < j)
			}
		}
	}
}

func TestRoleGates(t *testing.T) {
	t.Parallel()

	for _, r := range []Role{Root, Master, Agent} {
		if !r.CanSendTransfers() {
			t.Fatalf("%s should be able to send transfers", r)
		}

		if r.CanPlaceBets() {
			t.Fatalf("%s should not be able to place bets", r)
		}
	}

	if Player.CanSendTransfers() {
		t.Fatal("player should never send transfers")
	}

	if !Player.CanPlaceBets() {
		t.Fatal("player should be able to place bets")
	}

	if !Root.TransfersToAnyone() {
		t.Fatal("root is exempt from the direct-child gate")
	}

	for _, r := range []Role{Master, Agent, Player} {
		if r.TransfersToAnyone() {
			t.Fatalf("%s is not exempt from the direct-child gate", r)
		}
	}
}

func TestNoRoleCreatesItselfOrSenior(t *testing.T) {
	t.Parallel()

	all := []Role{Root, Master, Agent, Player}

	for _, r := range all {
		if r.CanCreate(r) {
			t.Fatalf("%s must not create its own role", r)
		}
	}

	if Agent.CanCreate(Master) {
		t.Fatal("agent must not create the more senior master role")
	}
}
