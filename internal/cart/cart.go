// Package cart holds the session-scoped cart value and its mutation rules.
// The cart never talks to storage: prices are snapshots taken at add time and
// stay locked for the session until checkout.
package cart

import (
	"github.com/google/uuid"
)

type Line struct {
	ProductID      uuid.UUID `json:"product_id"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	ImageURL       string    `json:"image_url"`
	Quantity       int       `json:"quantity"`
}

type Cart struct {
	Lines []Line `json:"lines"`
}

// Add увеличивает количество существующей позиции либо добавляет новую со
// снапшотом цены. Инвариант: не больше одной позиции на product id.
// Возвращает суммарное количество единиц в корзине.
func (c *Cart) Add(productID uuid.UUID, name string, unitPriceCents int64, imageURL string) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity++
			return c.Count()
		}
	}
	c.Lines = append(c.Lines, Line{
		ProductID:      productID,
		Name:           name,
		UnitPriceCents: unitPriceCents,
		ImageURL:       imageURL,
		Quantity:       1,
	})
	return c.Count()
}

// SetQuantity задаёт количество позиции. qty < 0 трактуется как 0; ноль
// удаляет позицию. Отсутствующий product id — no-op.
func (c *Cart) SetQuantity(productID uuid.UUID, qty int) {
	if qty < 0 {
		qty = 0
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID != productID {
			continue
		}
		if qty == 0 {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		} else {
			c.Lines[i].Quantity = qty
		}
		return
	}
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) TotalCents() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.UnitPriceCents * int64(l.Quantity)
	}
	return total
}

func (c *Cart) Count() int {
	var n int
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool { return len(c.Lines) == 0 }
