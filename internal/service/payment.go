package service

import (
	"net/url"

	"school-store/internal/money"
)

// PaymentRedirect строит URL внешнего платёжного редиректа с закодированной
// суммой. Система не участвует в callback/webhook — только hand-off.
type PaymentRedirect struct {
	baseURL string
}

func NewPaymentRedirect(baseURL string) *PaymentRedirect {
	return &PaymentRedirect{baseURL: baseURL}
}

// HandoffURL возвращает "" если базовый URL не настроен — вызывающая сторона
// тогда ведёт покупателя на страницу подтверждения заказа.
func (p *PaymentRedirect) HandoffURL(totalCents int64) string {
	if p.baseURL == "" {
		return ""
	}
	q := url.Values{}
	q.Set("amount", money.FormatCents(totalCents))
	return p.baseURL + "?" + q.Encode()
}
