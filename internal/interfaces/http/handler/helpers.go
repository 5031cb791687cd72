package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/venuehq/backend/internal/domain/shared"
	"github.com/venuehq/backend/internal/interfaces/http/dto"
)

// bindFilter binds common list query parameters into a domain filter,
// applying defaults for anything the client omitted
func bindFilter(c *gin.Context) (shared.Filter, error) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return shared.Filter{}, err
	}

	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search
	return filter, nil
}
