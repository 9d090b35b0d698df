package order

import (
	"fmt"
	"net/url"

	"github.com/dishoutapp/dishout/internal/phone"
)

// PendingOrder is the transient selection made when a user taps "order" on
// a place. It is consumed when a delivery provider is chosen or the flow is
// cancelled.
type PendingOrder struct {
	Phone           string `json:"phone"`
	RestaurantTitle string `json:"restaurantTitle"`
}

// Composer builds the outbound WhatsApp deep link once a delivery provider
// is chosen.
type Composer struct {
	plan phone.Plan
}

func NewComposer(plan phone.Plan) Composer {
	return Composer{plan: plan}
}

// Message renders the templated order text. The image sentence is appended
// only when a shareable link exists.
func (c Composer) Message(o PendingOrder, dishName, provider, imageURL string) string {
	message := fmt.Sprintf(
		"Hello, I found %s on DishOut, and I would like to order %s, I would like my delivery through %s.",
		o.RestaurantTitle, dishName, provider)
	if imageURL != "" {
		message += fmt.Sprintf(" Here's the dish I'm looking for: %s", imageURL)
	}
	return message
}

// DeepLink produces the wa.me link for a pending order: normalized digits
// plus the percent-encoded templated message.
func (c Composer) DeepLink(o PendingOrder, dishName, provider, imageURL string) string {
	digits := phone.Normalize(o.Phone, c.plan)
	text := url.Values{}
	text.Set("text", c.Message(o, dishName, provider, imageURL))
	return fmt.Sprintf("https://wa.me/%s?%s", digits, text.Encode())
}

// Dialable reports whether the order's phone survives normalization in a
// usable form.
func (c Composer) Dialable(o PendingOrder) bool {
	return phone.Usable(phone.Normalize(o.Phone, c.plan))
}
