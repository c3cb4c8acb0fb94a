package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ListDebatesOptions 是分頁查詢辯論主題的條件
type ListDebatesOptions struct {
	Page   int
	Limit  int
	Status string // 空字串表示不過濾
}

// ListDebates 分頁查詢辯論主題
func (c *Client) ListDebates(ctx context.Context, opts ListDebatesOptions) (*DebatePage, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 10
	}

	query := url.Values{}
	query.Set("page", fmt.Sprintf("%d", opts.Page))
	query.Set("limit", fmt.Sprintf("%d", opts.Limit))
	if opts.Status != "" {
		query.Set("status", opts.Status)
	}

	var page DebatePage
	if err := c.do(ctx, http.MethodGet, "/api/debates?"+query.Encode(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetDebate 查詢單一辯論主題
func (c *Client) GetDebate(ctx context.Context, debateID string) (*Debate, error) {
	var debate Debate
	if err := c.do(ctx, http.MethodGet, "/api/debates/"+debateID, nil, &debate); err != nil {
		return nil, err
	}
	return &debate, nil
}

// CreateDebateInput 是建立辯論主題所需的欄位
type CreateDebateInput struct {
	Title    string `json:"title"`
	Topic    string `json:"topic"`
	Category string `json:"category"`
}

// CreateDebate 建立新的辯論主題
func (c *Client) CreateDebate(ctx context.Context, input CreateDebateInput) (*Debate, error) {
	var debate Debate
	if err := c.do(ctx, http.MethodPost, "/api/debates", input, &debate); err != nil {
		return nil, err
	}
	return &debate, nil
}
