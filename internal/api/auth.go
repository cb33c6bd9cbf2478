package api

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yama-admin/video-console-go/internal/models"
)

type loginRequest struct {
	EmailID  string `json:"emailId"`
	Password string `json:"password"`
	DeviceID string `json:"deviceId"`
}

type loginResponse struct {
	UserDetails models.UserDetails `json:"userDetails"`
}

// Login authenticates the admin and returns the session details to be
// handed to the session store. The call itself is unauthenticated.
func (c *Client) Login(ctx context.Context, emailID, password string) (models.UserDetails, error) {
	req := loginRequest{
		EmailID:  emailID,
		Password: password,
		DeviceID: uuid.NewString(),
	}

	var resp loginResponse
	if err := c.do(ctx, "POST", "/api/v1/users/login", req, &resp, false); err != nil {
		return models.UserDetails{}, fmt.Errorf("login: %w", err)
	}

	return resp.UserDetails, nil
}
