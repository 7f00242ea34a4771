package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrInvalidInput 表示输入缺少必填项或取值非法，具体原因会被包装在错误信息中。
var ErrInvalidInput = errors.New("invalid input")

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ListFilter describes the query parameters shared by every content list.
// Fields a module does not support are ignored.
type ListFilter struct {
	Keyword   string
	Active    *bool
	Featured  *bool
	Category  string
	ProductID string
	Page      int
	PageSize  int
	// Public 为 true 时关联数据同样只加载上架记录。
	Public    bool
}

// ListResult aggregates paginated results.
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func normalizePerPage(perPage, fallback int) int {
	if perPage <= 0 {
		return fallback
	}
	if perPage > maxPageSize {
		return maxPageSize
	}
	return perPage
}

func calculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	if total == 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// paginate counts and loads one page of query. order clauses are applied in sequence.
func paginate[T any](query *gorm.DB, filter ListFilter, order ...string) (ListResult[T], error) {
	result := ListResult[T]{
		Items:    []T{},
		Page:     normalizePage(filter.Page),
		PageSize: normalizePerPage(filter.PageSize, defaultPageSize),
	}

	if err := query.Count(&result.Total).Error; err != nil {
		return result, err
	}
	result.TotalPages = calculateTotalPages(result.Total, result.PageSize)

	for _, clause := range order {
		query = query.Order(clause)
	}
	offset := (result.Page - 1) * result.PageSize
	if err := query.Limit(result.PageSize).Offset(offset).Find(&result.Items).Error; err != nil {
		return result, err
	}
	return result, nil
}

// likeEscaper 转义 LIKE 通配符，关键字按字面匹配。
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// applyCommonFilters 追加 keyword/active/featured 条件。
// columns 为参与关键字匹配的列，featured 仅在模型有 is_featured 列时传 true。
func applyCommonFilters(query *gorm.DB, filter ListFilter, columns []string, featured bool) *gorm.DB {
	if keyword := strings.ToLower(strings.TrimSpace(filter.Keyword)); keyword != "" && len(columns) > 0 {
		like := "%" + likeEscaper.Replace(keyword) + "%"
		conditions := make([]string, 0, len(columns))
		args := make([]any, 0, len(columns))
		for _, column := range columns {
			conditions = append(conditions, fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, column))
			args = append(args, like)
		}
		query = query.Where("("+strings.Join(conditions, " OR ")+")", args...)
	}
	if filter.Active != nil {
		query = query.Where("is_active = ?", *filter.Active)
	}
	if featured && filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}
	return query
}

// activeOnly 用作 Preload 条件，只加载上架的关联记录。
func activeOnly(query *gorm.DB) *gorm.DB {
	return query.Where("is_active = ?", true)
}

// findByID 按主键读取记录，未命中时返回 notFound。
func findByID[T any](gdb *gorm.DB, id string, notFound error, preloads ...string) (*T, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, notFound
	}

	query := gdb
	for _, preload := range preloads {
		query = query.Preload(preload)
	}

	var item T
	if err := query.Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}
		return nil, err
	}
	return &item, nil
}

// removeByID 默认软删除（is_active=false），permanent 为 true 时物理删除。
func removeByID[T any](gdb *gorm.DB, id string, permanent bool, notFound error) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return notFound
	}

	var model T
	var result *gorm.DB
	if permanent {
		result = gdb.Where("id = ?", id).Delete(&model)
	} else {
		result = gdb.Model(&model).Where("id = ?", id).Update("is_active", false)
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound
	}
	return nil
}

// nextSortOrder 返回 table 中 sort_order 的下一个值。
func nextSortOrder[T any](gdb *gorm.DB) (int, error) {
	var maxOrder int
	if err := gdb.Model(new(T)).
		Select("COALESCE(MAX(sort_order), 0)").
		Scan(&maxOrder).Error; err != nil {
		return 0, err
	}
	return maxOrder + 1, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func trimPtr(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

// setString 在 value 非 nil 时写入裁剪后的值。
func setString(dst *string, value *string) {
	if value != nil {
		*dst = strings.TrimSpace(*value)
	}
}

func setInt(dst *int, value *int) {
	if value != nil {
		*dst = *value
	}
}

func setBool(dst *bool, value *bool) {
	if value != nil {
		*dst = *value
	}
}

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

// BoolPtr 返回布尔值指针，便于构造过滤条件与输入。
func BoolPtr(v bool) *bool {
	return &v
}

// StringPtr 返回字符串指针。
func StringPtr(v string) *string {
	return &v
}

// IntPtr 返回整数指针。
func IntPtr(v int) *int {
	return &v
}
