package shopify

import "context"

// Products returns the first n products of the shop.
func (c *Client) Products(ctx context.Context, first int) ([]Product, error) {
	var data struct {
		Products Connection[Product] `json:"products"`
	}
	if err := c.Do(ctx, "getProducts", ProductsQuery, map[string]any{"first": first}, &data); err != nil {
		return nil, err
	}
	return data.Products.Nodes(), nil
}

// ProductByHandle returns nil when the shop has no product with that handle.
func (c *Client) ProductByHandle(ctx context.Context, handle string) (*Product, error) {
	var data struct {
		Product *Product `json:"productByHandle"`
	}
	if err := c.Do(ctx, "getProductByHandle", ProductByHandleQuery, map[string]any{"handle": handle}, &data); err != nil {
		return nil, err
	}
	return data.Product, nil
}

// CollectionProducts returns an empty list for an unknown collection.
func (c *Client) CollectionProducts(ctx context.Context, handle string, first int) ([]Product, error) {
	var data struct {
		Collection *struct {
			Products Connection[Product] `json:"products"`
		} `json:"collection"`
	}
	vars := map[string]any{"handle": handle, "first": first}
	if err := c.Do(ctx, "getCollectionProducts", CollectionProductsQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.Collection == nil {
		return []Product{}, nil
	}
	return data.Collection.Products.Nodes(), nil
}
