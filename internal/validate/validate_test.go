package validate

import "testing"

func TestLoginMalformedEmails(t *testing.T) {
	for _, email := range []string{"", "alice", "alice@", "@uni.edu", "alice uni.edu"} {
		errs := Check(Login{Email: email, Password: "password1", Role: "student"})
		if errs == nil || errs["email"] == "" {
			t.Fatalf("expected email error for %q, got %v", email, errs)
		}
	}
}

func TestLoginShortPasswords(t *testing.T) {
	for _, password := range []string{"", "a", "1234567"} {
		errs := Check(Login{Email: "alice@uni.edu", Password: password, Role: "student"})
		if errs == nil || errs["password"] == "" {
			t.Fatalf("expected password error for %q, got %v", password, errs)
		}
	}
}

func TestLoginRoleRequired(t *testing.T) {
	errs := Check(Login{Email: "alice@uni.edu", Password: "password1"})
	if errs == nil || errs["role"] != "You need to select a role." {
		t.Fatalf("expected role-required message, got %v", errs)
	}
	if errs["email"] != "" || errs["password"] != "" {
		t.Fatalf("valid fields must not carry errors: %v", errs)
	}
}

func TestLoginClean(t *testing.T) {
	if errs := Check(Login{Email: "alice@uni.edu", Password: "password1", Role: "faculty"}); errs != nil {
		t.Fatalf("expected clean form, got %v", errs)
	}
}

func TestSignupConfirmMismatch(t *testing.T) {
	pairs := [][2]string{
		{"password1", "password2"},
		{"password1", ""},
		{"longenoughpass", "longenoughpass2"},
	}
	for _, pair := range pairs {
		errs := Check(Signup{
			Name:            "Bob",
			Email:           "bob@uni.edu",
			Password:        pair[0],
			ConfirmPassword: pair[1],
			Role:            "student",
		})
		if errs == nil || errs["confirm_password"] == "" {
			t.Fatalf("expected confirm mismatch for %v, got %v", pair, errs)
		}
	}
}

func TestSignupUnknownRole(t *testing.T) {
	errs := Check(Signup{
		Name:            "Bob",
		Email:           "bob@uni.edu",
		Password:        "password1",
		ConfirmPassword: "password1",
		Role:            "janitor",
	})
	if errs == nil || errs["role"] == "" {
		t.Fatalf("expected role error, got %v", errs)
	}
}

func TestSignupClean(t *testing.T) {
	errs := Check(Signup{
		Name:            "Bob",
		Email:           "bob@uni.edu",
		Password:        "password1",
		ConfirmPassword: "password1",
		Role:            "student",
		Department:      "Physics",
	})
	if errs != nil {
		t.Fatalf("expected clean form, got %v", errs)
	}
}
