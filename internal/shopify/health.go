package shopify

import (
	"context"
	"time"
)

type HealthResult struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Shop  string `json:"shop,omitempty"`
	Error string `json:"error,omitempty"`
}

// Ping runs a minimal query to check credentials and reachability.
func (c *Client) Ping(ctx context.Context) HealthResult {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var data struct {
		Shop struct {
			Name string `json:"name"`
		} `json:"shop"`
	}
	if err := c.Do(ctx, "shop", ShopQuery, nil, &data); err != nil {
		return HealthResult{Name: c.Name, OK: false, Error: err.Error()}
	}
	return HealthResult{Name: c.Name, OK: true, Shop: data.Shop.Name}
}
