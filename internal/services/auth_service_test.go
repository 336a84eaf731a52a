package services

import (
	"context"
	"errors"
	"testing"

	"campground_backend/pkg/utils"
)

func registerRequest(username string) RegisterRequest {
	age := 30
	phone := "555-0100"
	return RegisterRequest{
		Username:    username,
		Email:       username + "@example.com",
		Password:    "correct-horse",
		FirstName:   "Pat",
		LastName:    "Trail",
		Age:         &age,
		PhoneNumber: &phone,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reg, err := env.auth.Register(ctx, registerRequest("pat"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	claims, err := utils.ValidateToken([]byte("test-secret"), reg.Token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.UserID != reg.ID || claims.Username != "pat" || claims.IsStaff {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	camper, err := env.campers.GetCamperByUserID(ctx, reg.ID)
	if err != nil {
		t.Fatalf("camper profile not created: %v", err)
	}
	if camper.Age == nil || *camper.Age != 30 {
		t.Errorf("age not stored: %+v", camper)
	}

	for _, login := range []string{"pat", "PAT@example.com"} {
		resp, err := env.auth.Login(ctx, LoginRequest{Username: login, Password: "correct-horse"})
		if err != nil {
			t.Fatalf("login as %s: %v", login, err)
		}
		if !resp.Valid || resp.ID != reg.ID || resp.Token == "" {
			t.Fatalf("unexpected login response: %+v", resp)
		}
	}

	for _, bad := range []LoginRequest{
		{Username: "pat", Password: "wrong-password"},
		{Username: "nobody", Password: "correct-horse"},
		{Username: "nobody@example.com", Password: "correct-horse"},
	} {
		if _, err := env.auth.Login(ctx, bad); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("login %+v: expected ErrInvalidCredentials, got %v", bad, err)
		}
	}
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	if _, err := env.auth.Register(ctx, registerRequest("dup")); err != nil {
		t.Fatal(err)
	}
	_, err := env.auth.Register(ctx, registerRequest("dup"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	tooOld := -1
	long := "0123456789012345"

	tests := []struct {
		name   string
		mutate func(*RegisterRequest)
	}{
		{"at sign in username", func(r *RegisterRequest) { r.Username = "a@b" }},
		{"negative age", func(r *RegisterRequest) { r.Age = &tooOld }},
		{"long phone", func(r *RegisterRequest) { r.PhoneNumber = &long }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := registerRequest("valid")
			tt.mutate(&req)
			if _, err := env.auth.Register(context.Background(), req); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestPromoteToStaff(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	if _, err := env.auth.Register(ctx, registerRequest("ranger")); err != nil {
		t.Fatal(err)
	}
	if err := env.auth.PromoteToStaff(ctx, "ranger"); err != nil {
		t.Fatalf("PromoteToStaff: %v", err)
	}
	resp, err := env.auth.Login(ctx, LoginRequest{Username: "ranger", Password: "correct-horse"})
	if err != nil {
		t.Fatal(err)
	}
	claims, err := utils.ValidateToken([]byte("test-secret"), resp.Token)
	if err != nil {
		t.Fatal(err)
	}
	if !claims.IsStaff {
		t.Fatal("expected staff claim after promotion")
	}
	if err := env.auth.PromoteToStaff(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
