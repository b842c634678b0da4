package apihelpers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/circlekay00/theft-app/pkg/filter"
)

const dateQueryLayout = "2006-01-02"

type ReportQuery struct {
	Page     int
	PageSize int
	Filter   filter.FilterSpec
}

// ParseReportQueryFromCtx reads the filter and pagination query parameters of
// a report listing request. Date bounds are calendar days: "from" is floored
// to midnight and "to" is ceiled to the end of its day, both inclusive.
func ParseReportQueryFromCtx(c *gin.Context) (*ReportQuery, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		return nil, err
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		return nil, err
	}

	spec := filter.FilterSpec{
		Text:        c.DefaultQuery("search", ""),
		Status:      c.DefaultQuery("status", ""),
		CategoryID:  c.DefaultQuery("category", ""),
		StoreNumber: c.DefaultQuery("store", ""),
	}

	if fromStr := c.DefaultQuery("from", ""); fromStr != "" {
		from, err := time.Parse(dateQueryLayout, fromStr)
		if err != nil {
			return nil, err
		}
		spec.From = filter.DayStart(from)
	}

	if toStr := c.DefaultQuery("to", ""); toStr != "" {
		to, err := time.Parse(dateQueryLayout, toStr)
		if err != nil {
			return nil, err
		}
		spec.To = filter.DayEnd(to)
	}

	return &ReportQuery{
		Page:     page,
		PageSize: pageSize,
		Filter:   spec,
	}, nil
}
