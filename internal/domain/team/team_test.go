package team

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jsamuelsen11/task-planner/internal/domain"
)

func memberIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("u%d", i)
	}
	return ids
}

func TestTeam_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		team       Team
		wantReason domain.Reason
	}{
		{"valid", Team{Name: "eng", Description: "desc", AdminID: "u1"}, ""},
		{"missing admin", Team{Name: "eng", Description: "desc"}, domain.ReasonMissingField},
		{"missing description", Team{Name: "eng", AdminID: "u1"}, domain.ReasonMissingField},
		{"description too long", Team{Name: "eng", Description: strings.Repeat("d", 129), AdminID: "u1"}, domain.ReasonTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := domain.ReasonOf(tt.team.Validate()); got != tt.wantReason {
				t.Errorf("Validate() reason = %q, want %q", got, tt.wantReason)
			}
		})
	}
}

func TestNormalizeBatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ids      []string
		want     []string
		wantKind error
	}{
		{"dedupes in order", []string{"b", " a ", "b"}, []string{"b", "a"}, nil},
		{"empty batch", nil, nil, domain.ErrValidation},
		{"blank id", []string{"a", " "}, nil, domain.ErrValidation},
		{"fifty is allowed", memberIDs(50), memberIDs(50), nil},
		{"fifty one rejected", memberIDs(51), nil, domain.ErrLimitExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := NormalizeBatch(tt.ids)
			if tt.wantKind != nil {
				if !errors.Is(err, tt.wantKind) {
					t.Fatalf("NormalizeBatch() error = %v, want %v", err, tt.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeBatch() error = %v", err)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("NormalizeBatch() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTeam_CheckCapacity(t *testing.T) {
	t.Parallel()

	tm := Team{ID: "t1", AdminID: "u0", MemberIDs: memberIDs(48)}

	if err := tm.CheckCapacity(2); err != nil {
		t.Errorf("CheckCapacity(2) = %v, want nil", err)
	}
	err := tm.CheckCapacity(3)
	if !errors.Is(err, domain.ErrLimitExceeded) {
		t.Fatalf("CheckCapacity(3) = %v, want ErrLimitExceeded", err)
	}
	if got := domain.ReasonOf(err); got != domain.ReasonMemberCapExceeded {
		t.Errorf("reason = %q, want %q", got, domain.ReasonMemberCapExceeded)
	}
}

func TestTeam_NewcomersAndRemovable(t *testing.T) {
	t.Parallel()

	tm := Team{ID: "t1", AdminID: "u0", MemberIDs: []string{"u0", "u1"}}

	got := tm.Newcomers([]string{"u1", "u2", "u3"})
	if strings.Join(got, ",") != "u2,u3" {
		t.Errorf("Newcomers() = %v, want [u2 u3]", got)
	}

	if err := tm.CheckRemovable([]string{"u1"}); err != nil {
		t.Errorf("CheckRemovable(u1) = %v, want nil", err)
	}
	if got := domain.ReasonOf(tm.CheckRemovable([]string{"u1", "u0"})); got != domain.ReasonInvalidUserID {
		t.Errorf("CheckRemovable(admin) reason = %q, want %q", got, domain.ReasonInvalidUserID)
	}
}
