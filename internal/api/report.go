package api

import (
	"context"
	"fmt"

	"github.com/yama-admin/video-console-go/internal/models"
)

// UsersReport fetches the per-grade user aggregation.
func (c *Client) UsersReport(ctx context.Context) (models.UsersReport, error) {
	var resp models.UsersReport
	if err := c.getJSON(ctx, "/api/v1/admin/usersReport", &resp); err != nil {
		return models.UsersReport{}, fmt.Errorf("users report: %w", err)
	}
	return resp, nil
}
