package userapp

import (
	"context"
	"errors"
	"testing"
	"time"
	"yatube/internal/core/apperr"
	"yatube/internal/core/user"

	"github.com/dgrijalva/jwt-go"
)

type memUsers struct {
	byID map[string]*user.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[string]*user.User{}}
}

func (r *memUsers) Create(_ context.Context, u *user.User) (*user.User, error) {
	r.byID[u.ID.String()] = u
	return u, nil
}

func (r *memUsers) FindByID(_ context.Context, id string) (*user.User, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, apperr.ErrNotFound
}

func (r *memUsers) FindByUsername(_ context.Context, username string) (*user.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *memUsers) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	for _, u := range r.byID {
		if u.Username == username || (email != "" && u.Email == email) {
			return true, nil
		}
	}
	return false, nil
}

func TestRegisterLoginParseToken(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newMemUsers(), []byte("secret"))

	dto, err := svc.RegisterUser(ctx, "Leo", "Tolstoy", " leo ", "leo@example.com", "pass123")
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if dto.Username != "leo" || dto.FullName != "Leo Tolstoy" {
		t.Fatalf("RegisterUser = %+v", dto)
	}

	resp, err := svc.LoginUser(ctx, "leo", "pass123")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	id, err := svc.ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if id != dto.ID {
		t.Fatalf("token subject = %s, want %s", id, dto.ID)
	}
}

func TestRegisterRejectsDuplicatesAndBlanks(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newMemUsers(), []byte("secret"))

	if _, err := svc.RegisterUser(ctx, "", "", "leo", "", "pass"); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if _, err := svc.RegisterUser(ctx, "", "", "leo", "", "other"); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("duplicate username: err = %v, want ErrConflict", err)
	}

	_, err := svc.RegisterUser(ctx, "", "", " ", "", "")
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("blank form: err = %v, want ErrValidation", err)
	}
	fields := apperr.Fields(err)
	if fields["username"] == "" || fields["password"] == "" {
		t.Fatalf("Fields = %v, want username and password errors", fields)
	}
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newMemUsers(), []byte("secret"))
	if _, err := svc.RegisterUser(ctx, "", "", "leo", "", "pass"); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}

	if _, err := svc.LoginUser(ctx, "leo", "wrong"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("wrong password: err = %v", err)
	}
	if _, err := svc.LoginUser(ctx, "nobody", "pass"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("unknown user: err = %v", err)
	}
}

func TestParseTokenRejects(t *testing.T) {
	svc := NewUserService(newMemUsers(), []byte("secret"))
	other := NewUserService(newMemUsers(), []byte("other-secret"))
	ctx := context.Background()

	if _, err := other.RegisterUser(ctx, "", "", "leo", "", "pass"); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	foreign, err := other.LoginUser(ctx, "leo", "pass")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.StandardClaims{
		Subject:   "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		Issuer:    tokenIssuer,
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	})
	expiredToken, _ := expired.SignedString([]byte("secret"))

	badSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.StandardClaims{
		Subject:   "not-a-uuid",
		Issuer:    tokenIssuer,
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	})
	badSubjectToken, _ := badSubject.SignedString([]byte("secret"))

	for name, token := range map[string]string{
		"garbage":       "abc.def.ghi",
		"foreign key":   foreign.Token,
		"expired":       expiredToken,
		"wrong subject": badSubjectToken,
	} {
		if _, err := svc.ParseToken(token); !errors.Is(err, apperr.ErrUnauthorized) {
			t.Fatalf("%s: err = %v, want ErrUnauthorized", name, err)
		}
	}
}
