package httputil

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination defaults shared by every listing endpoint.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// MaxPage keeps (page-1)*MaxPageSize within int.
	MaxPage = math.MaxInt / MaxPageSize
)

// ParsePagination safely parses and validates the page and page_size query parameters.
// It uses default values of 1 for page and 20 for page_size.
// The page cannot exceed MaxPage and the page_size cannot exceed 100.
func ParsePagination(c *gin.Context) (page, pageSize int, err error) {
	pageStr := c.DefaultQuery("page", strconv.Itoa(DefaultPage))
	page, err = strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return 0, 0, fmt.Errorf("invalid page parameter: must be a positive integer")
	}
	if page > MaxPage {
		return 0, 0, fmt.Errorf("invalid page parameter: must not exceed %d", MaxPage)
	}

	pageSizeStr := c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize))
	pageSize, err = strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 || pageSize > MaxPageSize {
		return 0, 0, fmt.Errorf("invalid page_size parameter: must be between 1 and %d", MaxPageSize)
	}

	return page, pageSize, nil
}
