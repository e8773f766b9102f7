package dto

// PaginationInfo describes one limit/offset page of a listing
type PaginationInfo struct {
	Limit      int   `json:"limit" example:"5"`
	Offset     int   `json:"offset" example:"0"`
	Returned   int   `json:"returned" example:"5"`
	TotalItems int64 `json:"total_items" example:"42"`
	HasMore    bool  `json:"has_more" example:"true"`
}

// PaginatedResponse represents a paginated list with metadata
type PaginatedResponse struct {
	Items      interface{}    `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}
