package apimodels

import "github.com/pkg/errors"

type Response struct {
	Status  string      `json:"status"`               // fail/success
	Message string      `json:"message,omitempty"`    // error message
	Code    string      `json:"error_code,omitempty"` // NOT_FOUND, FORBIDDEN, ...
	Data    interface{} `json:"data,omitempty"`
}

type ScrollerResponse struct {
	Response
	RowCount int64 `json:"row_count,omitempty"` // total rows matching the filter
}

func NewError(message string) Response {
	return Response{
		Status:  "fail",
		Message: message,
	}
}

func NewCodedError(code, message string) Response {
	return Response{
		Status:  "fail",
		Code:    code,
		Message: message,
	}
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}

type Pagination struct {
	Limit int `json:"limit"` // rows per page
	Page  int `json:"page"`  // 1,2,3..
}

const maxPageLimit = 100

func (r Pagination) Validate() error {
	if r.Page < 0 {
		return errors.New("page must not be negative")
	}
	if r.Limit < 0 || r.Limit > maxPageLimit {
		return errors.Errorf("limit must be between 0 and %d", maxPageLimit)
	}
	return nil
}

func (r Pagination) GetPage() (page, limit int) {
	page = 1
	limit = 10
	if r.Page > 0 {
		page = r.Page
	}
	if r.Limit > 0 {
		limit = r.Limit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// Bounds returns the slice window of the page over total rows.
func (r Pagination) Bounds(total int) (from, to int) {
	page, limit := r.GetPage()
	from = (page - 1) * limit
	if from > total {
		from = total
	}
	to = from + limit
	if to > total {
		to = total
	}
	return from, to
}

func NewScrollerResponse(data interface{}, rowCount int64) ScrollerResponse {
	return ScrollerResponse{
		Response: Response{
			Status: "success",
			Data:   data,
		},
		RowCount: rowCount,
	}
}
