package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rumibeauty/storefront/internal/domain"
)

func TestBuyLink_EncodesPurchaseIntent(t *testing.T) {
	p := domain.Product{Name: "Velvet Rose Matte Lipstick", Price: 3950}

	link := BuyLink("923315976504", p)

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", parsed.Host)
	assert.Equal(t, "/923315976504", parsed.Path)
	assert.Equal(t, "Hi, I am interested in buying Velvet Rose Matte Lipstick for Rs. 3950", parsed.Query().Get("text"))
}

func TestBuyLink_EscapesSpecialCharacters(t *testing.T) {
	p := domain.Product{Name: "Hydra-Boost Setting Spray & Mist", Price: 4200}

	link := BuyLink("923315976504", p)

	assert.NotContains(t, link, " ")
	assert.NotContains(t, link, "&Mist")

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Contains(t, parsed.Query().Get("text"), "Spray & Mist")
}
