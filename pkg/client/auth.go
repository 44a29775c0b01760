package client

import (
	"context"
	"net/http"

	"dstclan/internal/model"
)

// AuthClient /auth endpoint
type AuthClient struct {
	c *Client
}

type tokenBody struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Login exchanges credentials for an admin token
func (a *AuthClient) Login(ctx context.Context, username, password string) (string, error) {
	return a.post(ctx, model.AuthRequest{Username: username, Password: password, Action: model.AuthActionLogin})
}

// Register creates an admin account and returns its token.
// Only the first admin can register without an admin token.
func (a *AuthClient) Register(ctx context.Context, username, password string) (string, error) {
	return a.post(ctx, model.AuthRequest{Username: username, Password: password, Action: model.AuthActionRegister})
}

func (a *AuthClient) post(ctx context.Context, req model.AuthRequest) (string, error) {
	var out tokenBody
	if err := a.c.do(ctx, http.MethodPost, "/auth", nil, req, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}
