package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rumibeauty/storefront/pkg/httputil"
)

// AboutSection is one piece of the brand's static storefront copy.
type AboutSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

var aboutContent = map[string]AboutSection{
	"story": {
		Title:   "Our Story",
		Content: "Rumi Makeup was born from a singular vision: to treat the face as a canvas for the soul’s deepest expression. Inspired by the timeless harmony of artistry and nature, our founder sought to bridge the gap between high-fashion craftsmanship and the effortless beauty of everyday wear. We believe that true confidence is mindful, rooted in the quiet wonder of self-discovery rather than the noise of perfection. Every pigment and texture we create is an invitation to celebrate your unique light, designed for every skin tone and every walk of life. By prioritizing ethical sourcing and inclusive design, we ensure that our brand remains a testament to both human connection and the art of living beautifully.",
	},
	"ingredients": {
		Title:   "Ingredients",
		Content: "Our formulations are a careful dance between high-performance color and the gentle touch of skin-friendly care. We believe in being clean where it matters, utilizing a blend of soothing botanical extracts and skin-nourishing oils to ensure every application feels as good as it looks. By marrying medical-grade pigments with moisture-rich ceramides, we create textures that melt into the skin, providing vibrant finishes that never compromise your natural barrier. Transparency is our foundation, which is why we conduct rigorous safety testing to ensure our products are suitable for even the most sensitive complexions. Whether you are seeking a sheer wash of radiance or a bold statement, our ingredients are chosen to honor and protect the diversity of your skin.",
	},
	"sustainability": {
		Title:   "Sustainability",
		Content: "Sustainability at Rumi Makeup is a journey of continuous refinement and respect for the world that provides our inspiration. We favor responsible packaging, utilizing recycled and recyclable materials to ensure our footprint is as light as our loose powders. From reducing waste in our production cycles to maintaining a strict cruelty-free testing standard, we believe that beauty should never come at the cost of a living being. We embrace lifecycle thinking by focusing on long-wear formulas that encourage mindful consumption and exploring refill options that extend the life of our cherished components. By sourcing our raw materials through ethical partnerships, we aim to protect the delicate ecosystems that gift us our vibrant colors.",
	},
}

// AboutHandler serves the brand's static content sections.
type AboutHandler struct{}

// NewAboutHandler creates a new about-content HTTP handler.
func NewAboutHandler() *AboutHandler {
	return &AboutHandler{}
}

// GetSection handles GET /api/v1/about/{section}.
func (h *AboutHandler) GetSection(w http.ResponseWriter, r *http.Request) {
	section, ok := aboutContent[chi.URLParam(r, "section")]
	if !ok {
		httputil.WriteJSON(w, http.StatusNotFound, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "NOT_FOUND", Message: "unknown about section"},
		})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: section})
}
