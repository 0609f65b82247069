// Package pager — разбиение списков на страницы фиксированного размера.
package pager

// PageSize — размер страницы для всех списков бота.
const PageSize = 20

// Paginate возвращает срез для страницы page и общее число страниц.
// Номер страницы зажимается в допустимый диапазон: запрос страницы
// за пределами списка тихо даёт ближайшую валидную, а не ошибку.
// Для пустого списка — пустой срез и totalPages = 1.
func Paginate[T any](items []T, page, pageSize int) ([]T, int) {
	if pageSize <= 0 {
		pageSize = PageSize
	}

	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 0 {
		page = 0
	}
	if page > totalPages-1 {
		page = totalPages - 1
	}

	start := page * pageSize
	if start >= len(items) {
		return []T{}, totalPages
	}

	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], totalPages
}

// Clamp возвращает номер страницы, приведённый к диапазону [0, totalPages-1].
func Clamp(page, totalPages int) int {
	if page < 0 {
		return 0
	}
	if page > totalPages-1 {
		return totalPages - 1
	}
	return page
}
