package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"sentinel-ds/internal/app"
	"sentinel-ds/internal/transport/http/response"
)

type SearchHandler struct {
	searchService *app.SearchService
}

func NewSearchHandler(searchService *app.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search handles GET ?q=keyword&category=a&category=b&limit=&offset=.
// category may also be a comma-separated list.
func (h *SearchHandler) Search(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}
	offset, ok := queryInt(c, "offset", 0)
	if !ok {
		return
	}

	var categories []string
	for _, raw := range c.QueryArray("category") {
		categories = append(categories, strings.Split(raw, ",")...)
	}

	result, err := h.searchService.Search(c.Request.Context(), app.SearchInput{
		Keyword:    c.Query("q"),
		Categories: categories,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		writeServiceError(c, err, "search failed")
		return
	}
	response.OK(c, result)
}
