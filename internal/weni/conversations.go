package weni

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Conversation is one support conversation as listed by the billing API.
type Conversation struct {
	ID        int64  `json:"id"`
	URN       string `json:"urn"`
	CreatedOn string `json:"created_on"`
}

// conversationsPage is one page of the paginated conversation listing.
type conversationsPage struct {
	Results []Conversation `json:"results"`
	Next    string         `json:"next"`
}

// Conversations fetches every conversation for the date range (DD-MM-YYYY),
// following pagination until exhausted. An empty result is valid.
func (c *Client) Conversations(ctx context.Context, startDate, endDate string) ([]Conversation, error) {
	endpoint := fmt.Sprintf("%s/api/v1/%s/conversations/", c.billingBaseURL, c.projectUUID)

	var all []Conversation
	for page := 1; ; page++ {
		c.logger.Info().
			Int("page", page).
			Str("start", startDate).
			Str("end", endDate).
			Msg("fetching conversations")

		params := url.Values{}
		params.Set("page", strconv.Itoa(page))
		params.Set("start", startDate)
		params.Set("end", endDate)

		var resp conversationsPage
		if err := c.getJSON(ctx, endpoint, params, &resp); err != nil {
			return all, fmt.Errorf("failed to fetch conversations page %d: %w", page, err)
		}

		if len(resp.Results) == 0 {
			break
		}
		all = append(all, resp.Results...)
		c.logger.Debug().Int("count", len(resp.Results)).Int("page", page).Msg("collected conversations")

		if resp.Next == "" {
			break
		}
	}

	c.logger.Info().Int("total", len(all)).Msg("conversations collected")
	return all, nil
}

// Message is one message inside a conversation.
type Message struct {
	ID         int64  `json:"id"`
	SourceType string `json:"source_type"`
	Text       string `json:"text,omitempty"`
}

// IsAgent reports whether the message originated from an automated agent.
func (m Message) IsAgent() bool {
	return m.SourceType == "agent"
}

// messagesPage wraps the message listing response.
type messagesPage struct {
	Results []Message `json:"results"`
}

// Messages fetches all messages of one conversation, identified by the
// contact URN and the conversation start timestamp.
func (c *Client) Messages(ctx context.Context, contactURN, startTime string) ([]Message, error) {
	endpoint := fmt.Sprintf("%s/api/%s/conversations/", c.nexusBaseURL, c.projectUUID)

	params := url.Values{}
	params.Set("start", startTime)
	params.Set("contact_urn", contactURN)

	var resp messagesPage
	if err := c.getJSON(ctx, endpoint, params, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch messages for %s: %w", contactURN, err)
	}
	return resp.Results, nil
}
