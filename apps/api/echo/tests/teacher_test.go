package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/campushq/eventsync/core/teacher"
	"github.com/campushq/eventsync/core/user"
	emailsvc "github.com/campushq/eventsync/services/email"
)

func Test_teacherApi_adminOnly(t *testing.T) {
	resetDB()

	regular := createUser(t, "Pleb Plebson", "pleb@test.cd", "secret123", user.RoleUser, true)
	prof := createUser(t, "Prof Profson", "prof@test.cd", "secret123", user.RoleTeacher, true)

	tests := []httpTest{
		{name: "no token", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingCreds)},
		{name: "user role", token: getToken(t, regular), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{name: "teacher role", token: getToken(t, prof), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/admin/teachers", tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_teacherApi_provision(t *testing.T) {
	resetDB()
	emailsvc.ClearSentMessages()

	admin := createUser(t, "Admin Addy", "admin@test.cd", "secret123", user.RoleAdmin, true)
	adminToken := getToken(t, admin)

	body := marchallObj(t, map[string]string{
		"name":       "Grace Hopper",
		"email":      "grace@test.cd",
		"department": "Computer Science",
		"subject":    "Compilers",
	})

	var created teacher.Teacher
	t.Run("create", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/admin/teachers", adminToken, body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if created.TeacherID != "TCH001" {
			t.Errorf("TeacherID = %s; want TCH001", created.TeacherID)
		}
		if created.CreatedBy != admin.ID {
			t.Errorf("CreatedBy = %s; want %s", created.CreatedBy, admin.ID)
		}

		// a login account shares the teacher's ID and role
		usr, err := usrSvc.GetByID(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("GetByID(): %v", err)
		}
		if usr.Role != user.RoleTeacher {
			t.Errorf("Role = %s; want %s", usr.Role, user.RoleTeacher)
		}
		if usr.Email != created.Email {
			t.Errorf("Email = %s; want %s", usr.Email, created.Email)
		}

		// credentials were mailed out
		if len(emailsvc.SentMessages) != 1 {
			t.Fatalf("len(SentMessages) = %d; want 1", len(emailsvc.SentMessages))
		}
		msg := emailsvc.SentMessages[0]
		if msg.To[0].Address != created.Email {
			t.Errorf("To = %s; want %s", msg.To[0].Address, created.Email)
		}
		if !strings.Contains(msg.TextContent, created.TeacherID) {
			t.Error("expected the mail to contain the teacher ID")
		}
	})

	t.Run("email taken", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/admin/teachers", adminToken, body)
		app.ServeHTTP(rec, req)

		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "a teacher with this email already exists"}),
		}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("sequential teacher IDs", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/admin/teachers", adminToken, marchallObj(t, map[string]string{
			"name":       "Alan Kay",
			"email":      "alan@test.cd",
			"department": "Computer Science",
		}))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var second teacher.Teacher
		if err := json.Unmarshal(rec.Body.Bytes(), &second); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if second.TeacherID != "TCH002" {
			t.Errorf("TeacherID = %s; want TCH002", second.TeacherID)
		}
	})

	t.Run("list", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/admin/teachers", adminToken)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var teachers []teacher.Teacher
		if err := json.Unmarshal(rec.Body.Bytes(), &teachers); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if len(teachers) != 2 {
			t.Errorf("len(teachers) = %d; want 2", len(teachers))
		}
	})

	t.Run("retrieve", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/admin/teachers/"+created.ID, adminToken)
		app.ServeHTTP(rec, req)

		tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, created)}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("delete", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/admin/teachers/"+created.ID, adminToken)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusNoContent, rec.Body.String())
		}

		// the login account goes with it
		if _, err := usrSvc.GetByID(context.Background(), created.ID); err != user.ErrNotFound {
			t.Errorf("GetByID() error = %v; want %v", err, user.ErrNotFound)
		}
	})
}
