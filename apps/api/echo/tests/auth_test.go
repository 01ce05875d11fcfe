package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/campushq/eventsync/core/user"
)

func Test_authApi_register(t *testing.T) {
	resetDB()

	body := func(name, email, pwd, pwdConfirm string) []byte {
		return marchallObj(t, map[string]string{
			"name":             name,
			"email":            email,
			"password":         pwd,
			"password_confirm": pwdConfirm,
		})
	}

	existing := createUser(t, "Taken", "taken@test.cd", "secret123", user.RoleUser, true)

	tests := []httpTest{
		{
			name: "missing email", body: body("Jane Doe", "", "secret123", "secret123"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "this field is required"}),
		},
		{
			name: "invalid email", body: body("Jane Doe", "lol", "secret123", "secret123"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "email must be a valid email address"}),
		},
		{
			name: "password mismatch", body: body("Jane Doe", "jane@test.cd", "secret123", "secret124"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"password_confirm": "password_confirm must be equal to Password"}),
		},
		{
			name: "password too short", body: body("Jane Doe", "jane@test.cd", "abcdef", "abcdef"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"password": "password must contain at least 8 characters"}),
		},
		{
			name: "password all numeric", body: body("Jane Doe", "jane@test.cd", "12345678", "12345678"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"password": "password cannot be entirely numeric"}),
		},
		{
			name: "password similar to name", body: body("Jane Doe", "jane@test.cd", "janedoe123", "janedoe123"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"password": "password cannot be similar to user attributes"}),
		},
		{
			name: "email taken", body: body("Copy Cat", existing.Email, "secret123", "secret123"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "a user with this email already exists"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/auth/register", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("success", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/auth/register", body("Jane Doe", "Jane@Test.CD", "secret123", "secret123"))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var usr user.PublicUser
		if err := json.Unmarshal(rec.Body.Bytes(), &usr); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if usr.ID == "" {
			t.Error("expected a generated ID")
		}
		if usr.Email != "jane@test.cd" { // lowercased
			t.Errorf("Email = %s; want jane@test.cd", usr.Email)
		}
		if usr.Role != user.RoleUser {
			t.Errorf("Role = %s; want %s", usr.Role, user.RoleUser)
		}
		if !usr.IsActive {
			t.Error("expected user to be active")
		}
	})
}

func Test_authApi_login(t *testing.T) {
	resetDB()

	usr := createUser(t, "Awe Some", "awe@test.cd", "secret123", user.RoleUser, true)
	inactive := createUser(t, "Off Line", "off@test.cd", "secret123", user.RoleUser, false)

	body := func(email, pwd string) []byte {
		return marchallObj(t, map[string]string{"email": email, "password": pwd})
	}

	tests := []httpTest{
		{
			name: "missing fields", body: body("", ""),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"email":    "this field is required",
				"password": "this field is required",
			}),
		},
		{
			name: "unknown email", body: body("ghost@test.cd", "secret123"),
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, httpErr{Error: "invalid email or password"}),
		},
		{
			name: "wrong password", body: body(usr.Email, "notsecret"),
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, httpErr{Error: "invalid email or password"}),
		},
		{
			name: "deactivated account", body: body(inactive.Email, "secret123"),
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "account deactivated"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/auth/login", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("success", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/auth/login", body("Awe@Test.CD", "secret123")) // email case-insensitive
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var resp struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if resp.TokenType != "bearer" {
			t.Errorf("token_type = %s; want bearer", resp.TokenType)
		}
		if resp.AccessToken == "" {
			t.Fatal("expected an access token")
		}

		// the token grants access to protected endpoints
		req, rec = newAuthRequest(http.MethodGet, "/auth/me", resp.AccessToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("GET /auth/me code = %v; want %v", rec.Code, http.StatusOK)
		}
	})
}

func Test_authApi_me(t *testing.T) {
	resetDB()

	usr := createUser(t, "Awe Some", "awe@test.cd", "secret123", user.RoleUser, true)
	token := getToken(t, usr)

	tests := []httpTest{
		{name: "no token", method: http.MethodGet, path: "/auth/me", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingCreds)},
		{name: "garbage token", method: http.MethodGet, path: "/auth/me", token: "not.a.jwt", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingCreds)},
		{name: "ok", method: http.MethodGet, path: "/auth/me", token: token, wantCode: http.StatusOK, wantData: marchallObj(t, usr.Public())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("wrong scheme", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/auth/me")
		req.Header.Set("Authorization", "Basic "+token)
		app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingCreds)}
		checkCodeAndData(t, tt, rec)
	})
}

func Test_authApi_retrieve(t *testing.T) {
	resetDB()

	usr := createUser(t, "Awe Some", "awe@test.cd", "secret123", user.RoleUser, true)
	other := createUser(t, "Nosy Neighbor", "nosy@test.cd", "secret123", user.RoleUser, true)
	token := getToken(t, usr)

	tests := []httpTest{
		{name: "no token", path: "/auth/" + usr.ID, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingCreds)},
		{name: "own account", path: "/auth/" + usr.ID, token: token, wantCode: http.StatusOK, wantData: marchallObj(t, usr.Public())},
		{name: "someone else's account", path: "/auth/" + other.ID, token: token, wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_authApi_destroy(t *testing.T) {
	resetDB()

	usr := createUser(t, "Awe Some", "awe@test.cd", "secret123", user.RoleUser, true)
	other := createUser(t, "By Stander", "by@test.cd", "secret123", user.RoleUser, true)
	token := getToken(t, usr)

	t.Run("someone else's account", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/auth/"+other.ID, token)
		app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("own account", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/auth/"+usr.ID, token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusNoContent, rec.Body.String())
		}

		// the deleted account's token no longer resolves
		req, rec = newAuthRequest(http.MethodGet, "/auth/me", token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("GET /auth/me code = %v; want %v", rec.Code, http.StatusUnauthorized)
		}
	})
}

// Test_authApi_sessionFlow walks the full session lifecycle:
// register, login, access a protected endpoint, logout, get locked out.
func Test_authApi_sessionFlow(t *testing.T) {
	resetDB()

	// register
	req, rec := newRequest(http.MethodPost, "/auth/register", marchallObj(t, map[string]string{
		"name":             "Alice Johnson",
		"email":            "alice@example.com",
		"password":         "secret123",
		"password_confirm": "secret123",
	}))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register code = %v; want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	// login
	req, rec = newRequest(http.MethodPost, "/auth/login", marchallObj(t, map[string]string{
		"email":    "alice@example.com",
		"password": "secret123",
	}))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json.Unmarshal(): %v", err)
	}

	// the token works
	req, rec = newAuthRequest(http.MethodGet, "/auth/me", resp.AccessToken)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /auth/me code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var me user.PublicUser
	if err := json.Unmarshal(rec.Body.Bytes(), &me); err != nil {
		t.Fatalf("json.Unmarshal(): %v", err)
	}
	if me.Email != "alice@example.com" {
		t.Errorf("Email = %s; want alice@example.com", me.Email)
	}

	// logout
	req, rec = newAuthRequest(http.MethodPost, "/auth/logout", resp.AccessToken)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	// the token is dead
	req, rec = newAuthRequest(http.MethodGet, "/auth/me", resp.AccessToken)
	app.ServeHTTP(rec, req)
	tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingCreds)}
	checkCodeAndData(t, tt, rec)

	// logging out again still succeeds
	req, rec = newAuthRequest(http.MethodPost, "/auth/logout", resp.AccessToken)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("second logout code = %v; want %v", rec.Code, http.StatusOK)
	}
}

func Test_authApi_logout(t *testing.T) {
	resetDB()

	tests := []httpTest{
		{name: "no token", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingCreds)},
		{name: "garbage token", token: "not.a.jwt", wantCode: http.StatusOK, wantData: marchallObj(t, map[string]string{"message": "logged out successfully"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/auth/logout", tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
