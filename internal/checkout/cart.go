package checkout

import (
	"context"
	"fmt"

	"github.com/aaravmahajanofficial/pos-platform/internal/errors"
	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is the ordered line items of one checkout session. It is not safe for
// concurrent use; the owning session serialises access.
type Cart struct {
	items      []models.LineItem
	customerID *uuid.UUID
}

func NewCart() *Cart {
	return &Cart{items: []models.LineItem{}}
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Cart) CustomerID() *uuid.UUID {
	return copyUUID(c.customerID)
}

func (c *Cart) SetCustomer(customerID *uuid.UUID) {
	c.customerID = copyUUID(customerID)
}

// AddItem resolves the effective price and stock of the product (or its
// variant) and either bumps the quantity of the matching entry or appends a
// new one. On any error the cart is left untouched.
func (c *Cart) AddItem(ctx context.Context, catalog Catalog, productID uuid.UUID, variantID *uuid.UUID) (*models.LineItem, error) {
	item, err := prepareItem(ctx, catalog, productID, variantID)
	if err != nil {
		return nil, err
	}

	for i := range c.items {
		if !c.items[i].SameEntry(productID, variantID) {
			continue
		}

		quantity := c.items[i].Quantity + 1
		if exceedsStock(quantity, item.StockLimit) {
			return nil, stockExceeded(*item.StockLimit)
		}

		c.items[i].Quantity = quantity
		c.items[i].UnitPrice = item.UnitPrice
		c.items[i].StockLimit = item.StockLimit

		merged := cloneItem(c.items[i])

		return &merged, nil
	}

	if exceedsStock(item.Quantity, item.StockLimit) {
		return nil, stockExceeded(*item.StockLimit)
	}

	c.items = append(c.items, *item)

	added := cloneItem(*item)

	return &added, nil
}

// SetQuantity removes the entry when qty <= 0 and rejects quantities above a
// bounded stock limit.
func (c *Cart) SetQuantity(index, qty int) error {
	if index < 0 || index >= len(c.items) {
		return errors.BadRequestError("Item not found in the cart")
	}

	if qty <= 0 {
		return c.RemoveItem(index)
	}

	if limit := c.items[index].StockLimit; exceedsStock(qty, limit) {
		return stockExceeded(*limit)
	}

	c.items[index].Quantity = qty

	return nil
}

func (c *Cart) RemoveItem(index int) error {
	if index < 0 || index >= len(c.items) {
		return errors.BadRequestError("Item not found in the cart")
	}

	c.items = append(c.items[:index], c.items[index+1:]...)

	return nil
}

func (c *Cart) Clear() {
	c.items = []models.LineItem{}
}

// Restore replaces the cart contents with items, as recorded on an open tab.
func (c *Cart) Restore(items []models.LineItem) {
	c.items = make([]models.LineItem, len(items))
	for i, item := range items {
		c.items[i] = cloneItem(item)
	}
}

func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range c.items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	return subtotal
}

func (c *Cart) Tax(rules []models.TaxRule, defaultRate decimal.Decimal) decimal.Decimal {
	return ComputeTax(c.items, rules, defaultRate)
}

func (c *Cart) Total(rules []models.TaxRule, defaultRate decimal.Decimal) decimal.Decimal {
	return c.Subtotal().Add(c.Tax(rules, defaultRate))
}

// Snapshot returns a deep copy of the items, safe to store in a transaction.
func (c *Cart) Snapshot() []models.LineItem {
	snapshot := make([]models.LineItem, len(c.items))
	for i, item := range c.items {
		snapshot[i] = cloneItem(item)
	}

	return snapshot
}

func prepareItem(ctx context.Context, catalog Catalog, productID uuid.UUID, variantID *uuid.UUID) (*models.LineItem, error) {
	resolved, err := catalog.ResolveItem(ctx, productID, variantID)
	if err != nil {
		return nil, errors.ItemUnavailableError("Failed to add item to cart").WithError(err)
	}

	if resolved == nil {
		return nil, errors.ItemUnavailableError("Failed to add item to cart")
	}

	if resolved.Price == nil || resolved.Price.IsNegative() {
		return nil, errors.ItemUnavailableError(fmt.Sprintf("%s has no valid price", resolved.Name))
	}

	return &models.LineItem{
		ProductID:  productID,
		VariantID:  copyUUID(variantID),
		Name:       resolved.Name,
		UnitPrice:  *resolved.Price,
		Quantity:   1,
		Category:   resolved.Category,
		StockLimit: copyInt(resolved.StockLimit),
	}, nil
}

func exceedsStock(quantity int, limit *int) bool {
	return limit != nil && quantity > *limit
}

func stockExceeded(limit int) *errors.AppError {
	return errors.StockExceededError(fmt.Sprintf("Only %d units available", limit))
}

func cloneItem(item models.LineItem) models.LineItem {
	item.VariantID = copyUUID(item.VariantID)
	item.StockLimit = copyInt(item.StockLimit)

	return item
}

func copyUUID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}

	v := *id

	return &v
}

func copyInt(n *int) *int {
	if n == nil {
		return nil
	}

	v := *n

	return &v
}
