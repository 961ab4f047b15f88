package database

import (
	"fmt"
	"strings"
)

// UpdateBuilder build câu UPDATE cho partial update (PATCH):
// chỉ những column được Set mới xuất hiện trong SET clause
//
//	b := NewUpdateBuilder("books")
//	b.Set("title", "Go")
//	b.SetIf(req.IsPublished != nil, "is_published", req.IsPublished)
//	query, args := b.Build("id", id, "id, title")
type UpdateBuilder struct {
	table     string
	columns   []string
	args      []interface{}
	exprs     []string
	touchedAt string
}

func NewUpdateBuilder(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table, touchedAt: "updated_at"}
}

// WithoutTimestamp dùng cho bảng không có updated_at
func (b *UpdateBuilder) WithoutTimestamp() *UpdateBuilder {
	b.touchedAt = ""
	return b
}

// Set thêm "column = $n"
func (b *UpdateBuilder) Set(column string, value interface{}) *UpdateBuilder {
	b.columns = append(b.columns, column)
	b.args = append(b.args, value)
	return b
}

// SetIf chỉ Set khi cond = true (thường là field != nil)
func (b *UpdateBuilder) SetIf(cond bool, column string, value interface{}) *UpdateBuilder {
	if cond {
		b.Set(column, value)
	}
	return b
}

// SetExpr thêm "column = <expr>" không có placeholder, expr phải là SQL tĩnh
func (b *UpdateBuilder) SetExpr(column, expr string) *UpdateBuilder {
	b.exprs = append(b.exprs, column+" = "+expr)
	return b
}

// IsEmpty - không có column nào được Set
func (b *UpdateBuilder) IsEmpty() bool {
	return len(b.columns) == 0 && len(b.exprs) == 0
}

// Build trả về query và args theo thứ tự placeholder
func (b *UpdateBuilder) Build(idColumn string, id interface{}, returning string) (string, []interface{}) {
	sets := make([]string, 0, len(b.columns)+len(b.exprs)+1)
	for i, col := range b.columns {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i+1))
	}
	sets = append(sets, b.exprs...)
	if b.touchedAt != "" {
		sets = append(sets, b.touchedAt+" = NOW()")
	}

	args := make([]interface{}, 0, len(b.args)+1)
	args = append(args, b.args...)
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		b.table, strings.Join(sets, ", "), idColumn, len(args))
	if returning != "" {
		query += " RETURNING " + returning
	}
	return query, args
}
