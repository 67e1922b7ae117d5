package catalog

import (
	"fmt"
	"net/url"

	"github.com/rumibeauty/storefront/internal/domain"
)

// BuyLink builds the WhatsApp purchase-intent deep link for a product. The
// link is returned to clients; the storefront never calls it.
func BuyLink(number string, p domain.Product) string {
	text := fmt.Sprintf("Hi, I am interested in buying %s for Rs. %d", p.Name, p.Price)
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(text)
}
