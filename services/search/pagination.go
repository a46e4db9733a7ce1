package search

import (
	providerRepo "providerhub/database/repository/provider"
	"providerhub/models"
)

// NewWindow converts a 1-based page into an offset window.
func NewWindow(page, limit int) providerRepo.Window {
	return providerRepo.Window{
		Skip:  int64(page-1) * int64(limit),
		Limit: int64(limit),
	}
}

// Paginate builds the pagination block; pages is ceil(total/limit).
func Paginate(total int64, page, limit int) models.Pagination {
	var pages int64
	if limit > 0 && total > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	return models.Pagination{
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: pages,
	}
}
