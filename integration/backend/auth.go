package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/glowmart/storefront/core/session"
)

// AuthService covers the account endpoints. It satisfies the session
// store's remote surface.
type AuthService struct {
	c *Client
}

// Auth returns the account endpoints.
func (c *Client) Auth() *AuthService { return &AuthService{c: c} }

type userDTO struct {
	ID        string `json:"_id"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	AvatarURL string `json:"avatar"`
}

func (d userDTO) toUser() session.User {
	return session.User{
		ID:        d.ID,
		FullName:  d.FullName,
		Email:     d.Email,
		Phone:     d.Phone,
		AvatarURL: d.AvatarURL,
	}
}

// Login exchanges credentials for a token and the account profile.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, session.User, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		Token string  `json:"token"`
		User  userDTO `json:"user"`
	}
	if err := s.c.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return "", session.User{}, err
	}
	return resp.Token, resp.User.toUser(), nil
}

// RegisterRequest is the new-account payload.
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Register creates an account. The caller logs in separately afterwards.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) error {
	return s.c.do(ctx, http.MethodPost, "/auth/register", req, nil)
}

// FetchUser reads the profile of the token's account.
func (s *AuthService) FetchUser(ctx context.Context) (session.User, error) {
	var resp struct {
		User userDTO `json:"user"`
	}
	if err := s.c.do(ctx, http.MethodGet, "/auth/user", nil, &resp); err != nil {
		return session.User{}, err
	}
	return resp.User.toUser(), nil
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}

// UpdateProfile changes the account's editable fields and returns the
// updated profile.
func (s *AuthService) UpdateProfile(ctx context.Context, upd ProfileUpdate) (session.User, error) {
	var resp struct {
		User userDTO `json:"user"`
	}
	if err := s.c.do(ctx, http.MethodPut, "/auth/update", upd, &resp); err != nil {
		return session.User{}, err
	}
	return resp.User.toUser(), nil
}

// UploadAvatar replaces the account's avatar image and returns the URL the
// server stored it under.
func (s *AuthService) UploadAvatar(ctx context.Context, filename string, image io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("avatar", filepath.Base(filename))
	if err != nil {
		return "", fmt.Errorf("preparing avatar upload: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return "", fmt.Errorf("preparing avatar upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("preparing avatar upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.c.baseURL+"/auth/update-avatar", &buf)
	if err != nil {
		return "", fmt.Errorf("building avatar upload: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp struct {
		Avatar string `json:"avatar"`
	}
	if err := s.c.send(req, http.MethodPut, "/auth/update-avatar", &resp); err != nil {
		return "", err
	}
	return resp.Avatar, nil
}

// AvatarURL reads the account's current avatar URL.
func (s *AuthService) AvatarURL(ctx context.Context) (string, error) {
	var resp struct {
		Avatar string `json:"avatar"`
	}
	if err := s.c.do(ctx, http.MethodGet, "/auth/avatar", nil, &resp); err != nil {
		return "", err
	}
	return resp.Avatar, nil
}
