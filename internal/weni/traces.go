package weni

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Traces fetches the agent-execution traces recorded for one message.
// Zero traces for a message is valid, not an error.
func (c *Client) Traces(ctx context.Context, logID int64) ([]map[string]any, error) {
	endpoint := c.nexusBaseURL + "/api/agents/traces/"

	params := url.Values{}
	params.Set("project_uuid", c.projectUUID)
	params.Set("log_id", strconv.FormatInt(logID, 10))

	var traces []map[string]any
	if err := c.getJSON(ctx, endpoint, params, &traces); err != nil {
		return nil, fmt.Errorf("failed to fetch traces for log %d: %w", logID, err)
	}
	return traces, nil
}
