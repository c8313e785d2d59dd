package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/jsamuelsen11/task-planner/internal/adapters/http/dto"
)

func TestCreateTeam(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	alice := api.createUser("alice")

	created := api.createTeam("eng", alice.ID)
	if created.AdminID != alice.ID {
		t.Errorf("AdminID = %q, want %q", created.AdminID, alice.ID)
	}
	if len(created.MemberIDs) != 1 || created.MemberIDs[0] != alice.ID {
		t.Errorf("MemberIDs = %v, want admin only", created.MemberIDs)
	}

	rec := api.do(http.MethodPost, "/api/v1/teams", dto.TeamRequest{Name: "eng", Description: "again", AdminID: alice.ID})
	requireProblem(t, rec, http.StatusConflict, "duplicate_name")

	rec = api.do(http.MethodPost, "/api/v1/teams", dto.TeamRequest{Name: "ops", Description: "ops", AdminID: "ghost"})
	requireProblem(t, rec, http.StatusNotFound, "admin_not_found")

	rec = api.do(http.MethodPost, "/api/v1/teams", dto.TeamRequest{Name: "ops", AdminID: alice.ID})
	requireProblem(t, rec, http.StatusBadRequest, "missing_field")
}

func TestUpdateTeam_NewAdminJoins(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	alice := api.createUser("alice")
	bob := api.createUser("bob")
	eng := api.createTeam("eng", alice.ID)

	rec := api.do(http.MethodPut, "/api/v1/teams/"+eng.ID,
		dto.TeamRequest{Name: "platform", Description: "Platform team", AdminID: bob.ID})
	requireStatus(t, rec, http.StatusOK)

	got := decodeJSON[dto.TeamResponse](t, rec)
	if got.Name != "platform" || got.AdminID != bob.ID {
		t.Errorf("team = %+v", got)
	}
	if len(got.MemberIDs) != 2 {
		t.Errorf("MemberIDs = %v, want alice and bob", got.MemberIDs)
	}

	rec = api.do(http.MethodPut, "/api/v1/teams/missing",
		dto.TeamRequest{Name: "x", Description: "x", AdminID: bob.ID})
	requireProblem(t, rec, http.StatusNotFound, "not_found")
}

func TestMembers_AddListRemove(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	alice := api.createUser("alice")
	bob := api.createUser("bob")
	carol := api.createUser("carol")
	eng := api.createTeam("eng", alice.ID)
	path := "/api/v1/teams/" + eng.ID + "/members"

	rec := api.do(http.MethodPost, path, dto.MembersRequest{UserIDs: []string{bob.ID, carol.ID, bob.ID}})
	requireStatus(t, rec, http.StatusOK)
	if got := decodeJSON[dto.TeamResponse](t, rec); len(got.MemberIDs) != 3 {
		t.Errorf("MemberIDs = %v, want 3 members", got.MemberIDs)
	}

	rec = api.do(http.MethodGet, path, nil)
	requireStatus(t, rec, http.StatusOK)
	if got := decodeJSON[dto.UserListResponse](t, rec); got.Count != 3 {
		t.Errorf("Count = %d, want 3", got.Count)
	}

	rec = api.do(http.MethodDelete, path, dto.MembersRequest{UserIDs: []string{carol.ID}})
	requireStatus(t, rec, http.StatusOK)
	if got := decodeJSON[dto.TeamResponse](t, rec); len(got.MemberIDs) != 2 {
		t.Errorf("MemberIDs = %v, want 2 members", got.MemberIDs)
	}

	rec = api.do(http.MethodDelete, path, dto.MembersRequest{UserIDs: []string{alice.ID}})
	requireProblem(t, rec, http.StatusBadRequest, "invalid_user_id")

	rec = api.do(http.MethodPost, path, dto.MembersRequest{UserIDs: []string{"ghost"}})
	requireProblem(t, rec, http.StatusBadRequest, "invalid_user_id")
}

func TestAddMembers_BatchLimit(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	alice := api.createUser("alice")
	eng := api.createTeam("eng", alice.ID)

	ids := make([]string, 51)
	for i := range ids {
		ids[i] = fmt.Sprintf("u%d", i)
	}

	rec := api.do(http.MethodPost, "/api/v1/teams/"+eng.ID+"/members", dto.MembersRequest{UserIDs: ids})
	resp := requireProblem(t, rec, http.StatusUnprocessableEntity, "too_many")
	if resp.Kind != dto.KindLimitExceeded {
		t.Errorf("Kind = %q, want %q", resp.Kind, dto.KindLimitExceeded)
	}
}

func TestDeleteTeam(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	alice := api.createUser("alice")
	eng := api.createTeam("eng", alice.ID)
	b := api.createBoard("sprint1", eng.ID)
	k := api.createTask("t1", b.ID, alice.ID)

	rec := api.do(http.MethodDelete, "/api/v1/teams/"+eng.ID, nil)
	requireStatus(t, rec, http.StatusNoContent)

	requireProblem(t, api.do(http.MethodGet, "/api/v1/teams/"+eng.ID, nil), http.StatusNotFound, "not_found")
	requireProblem(t, api.do(http.MethodGet, "/api/v1/boards/"+b.ID, nil), http.StatusNotFound, "not_found")
	requireProblem(t, api.do(http.MethodGet, "/api/v1/tasks/"+k.ID, nil), http.StatusNotFound, "not_found")
	requireProblem(t, api.do(http.MethodDelete, "/api/v1/teams/"+eng.ID, nil), http.StatusNotFound, "not_found")

	rec = api.do(http.MethodGet, "/api/v1/teams", nil)
	requireStatus(t, rec, http.StatusOK)
	if got := decodeJSON[dto.TeamListResponse](t, rec); got.Count != 0 {
		t.Errorf("Count = %d, want 0", got.Count)
	}
}
