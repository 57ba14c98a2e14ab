package shopify

import (
	"context"
	"fmt"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
)

var _ cart.Remote = (*Client)(nil)

func lineInputs(lines []cart.LineInput) []map[string]any {
	out := make([]map[string]any, 0, len(lines))
	for _, l := range lines {
		out = append(out, map[string]any{"merchandiseId": l.MerchandiseID, "quantity": l.Quantity})
	}
	return out
}

func (c *Client) CreateCart(ctx context.Context, lines []cart.LineInput) (*cart.Cart, error) {
	input := map[string]any{}
	if len(lines) > 0 {
		input["lines"] = lineInputs(lines)
	}
	var data struct {
		Payload *cartPayload `json:"cartCreate"`
	}
	if err := c.Do(ctx, "cartCreate", CartCreateMutation, map[string]any{"input": input}, &data); err != nil {
		return nil, err
	}
	return data.Payload.result()
}

func (c *Client) AddLines(ctx context.Context, cartID string, lines []cart.LineInput) (*cart.Cart, error) {
	var data struct {
		Payload *cartPayload `json:"cartLinesAdd"`
	}
	vars := map[string]any{"cartId": cartID, "lines": lineInputs(lines)}
	if err := c.Do(ctx, "cartLinesAdd", CartLinesAddMutation, vars, &data); err != nil {
		return nil, err
	}
	return data.Payload.result()
}

func (c *Client) UpdateLines(ctx context.Context, cartID string, lines []cart.LineUpdate) (*cart.Cart, error) {
	updates := make([]map[string]any, 0, len(lines))
	for _, l := range lines {
		if l.Quantity < 1 {
			return nil, fmt.Errorf("line %s: %w", l.ID, cart.ErrInvalidQuantity)
		}
		updates = append(updates, map[string]any{"id": l.ID, "quantity": l.Quantity})
	}
	var data struct {
		Payload *cartPayload `json:"cartLinesUpdate"`
	}
	vars := map[string]any{"cartId": cartID, "lines": updates}
	if err := c.Do(ctx, "cartLinesUpdate", CartLinesUpdateMutation, vars, &data); err != nil {
		return nil, err
	}
	return data.Payload.result()
}

func (c *Client) RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*cart.Cart, error) {
	var data struct {
		Payload *cartPayload `json:"cartLinesRemove"`
	}
	vars := map[string]any{"cartId": cartID, "lineIds": lineIDs}
	if err := c.Do(ctx, "cartLinesRemove", CartLinesRemoveMutation, vars, &data); err != nil {
		return nil, err
	}
	return data.Payload.result()
}

// Cart fetches a cart. A cart the platform no longer knows is (nil, nil).
func (c *Client) Cart(ctx context.Context, cartID string) (*cart.Cart, error) {
	var data struct {
		Cart *Cart `json:"cart"`
	}
	if err := c.Do(ctx, "cart", CartQuery, map[string]any{"cartId": cartID}, &data); err != nil {
		return nil, err
	}
	return data.Cart.toDomain(), nil
}
