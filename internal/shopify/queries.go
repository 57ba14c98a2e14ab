package shopify

const productFields = `
  id
  handle
  title
  description
  descriptionHtml
  priceRange {
    minVariantPrice {
      amount
      currencyCode
    }
  }
  compareAtPriceRange {
    minVariantPrice {
      amount
      currencyCode
    }
  }
  images(first: 10) {
    edges {
      node {
        url
        altText
      }
    }
  }
  variants(first: 20) {
    edges {
      node {
        id
        title
        price {
          amount
          currencyCode
        }
        availableForSale
      }
    }
  }
  metafields(identifiers: [
    {namespace: "custom", key: "foot_weight"}
    {namespace: "custom", key: "product_features"}
    {namespace: "custom", key: "main_ingredients"}
    {namespace: "custom", key: "redemption_period"}
    {namespace: "custom", key: "redemption_locations"}
    {namespace: "custom", key: "made_in"}
    {namespace: "custom", key: "hppye_tag"}
  ]) {
    namespace
    key
    value
    type
  }
`

const ProductsQuery = `
query getProducts($first: Int!, $after: String) {
  products(first: $first, after: $after) {
    edges {
      node {` + productFields + `}
      cursor
    }
    pageInfo {
      hasNextPage
      endCursor
    }
  }
}`

const ProductByHandleQuery = `
query getProductByHandle($handle: String!) {
  productByHandle(handle: $handle) {` + productFields + `}
}`

const CollectionProductsQuery = `
query getCollectionProducts($handle: String!, $first: Int!) {
  collection(handle: $handle) {
    products(first: $first) {
      edges {
        node {` + productFields + `}
        cursor
      }
      pageInfo {
        hasNextPage
        endCursor
      }
    }
  }
}`

const cartFields = `
  id
  checkoutUrl
  totalQuantity
  cost {
    totalAmount {
      amount
      currencyCode
    }
  }
  lines(first: 100) {
    edges {
      node {
        id
        quantity
        merchandise {
          ... on ProductVariant {
            id
            title
            price {
              amount
              currencyCode
            }
            image {
              url
              altText
            }
            product {
              title
              handle
            }
          }
        }
      }
    }
  }
`

const userErrorFields = `
  userErrors {
    field
    message
    code
  }
`

const CartCreateMutation = `
mutation cartCreate($input: CartInput!) {
  cartCreate(input: $input) {
    cart {` + cartFields + `}` + userErrorFields + `
  }
}`

const CartLinesAddMutation = `
mutation cartLinesAdd($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesAdd(cartId: $cartId, lines: $lines) {
    cart {` + cartFields + `}` + userErrorFields + `
  }
}`

const CartLinesUpdateMutation = `
mutation cartLinesUpdate($cartId: ID!, $lines: [CartLineUpdateInput!]!) {
  cartLinesUpdate(cartId: $cartId, lines: $lines) {
    cart {` + cartFields + `}` + userErrorFields + `
  }
}`

const CartLinesRemoveMutation = `
mutation cartLinesRemove($cartId: ID!, $lineIds: [ID!]!) {
  cartLinesRemove(cartId: $cartId, lineIds: $lineIds) {
    cart {` + cartFields + `}` + userErrorFields + `
  }
}`

const CartQuery = `
query getCart($cartId: ID!) {
  cart(id: $cartId) {` + cartFields + `}
}`

const ShopQuery = `
query shop {
  shop {
    name
  }
}`
