package queries

import (
	"fmt"
	"strings"
)

// Column lists for the seller-scoped storefront tables.
const (
	ProductColumns  = "id, seller_id, name, price_cents, image_path, created_at"
	PostColumns     = "id, seller_id, body, image_path, created_at"
	QuestionColumns = "id, seller_id, asked_by, question, answer, created_at"
	ReviewColumns   = "id, seller_id, author, rating, comment, created_at"
	ReelColumns     = "id, seller_id, video_url, title, views, likes, duration_seconds, created_at"
)

// QueryBuilder for constructing SQL queries. Conditions use ? and are
// renumbered to $n when built.
type QueryBuilder struct {
	columns string
	table   string
	where   []string
	orderBy string
	limit   int
	params  []interface{}
}

func NewQueryBuilder(columns, table string) *QueryBuilder {
	return &QueryBuilder{columns: columns, table: table}
}

// SellerScoped selects rows of table owned by sellerID, newest first.
func SellerScoped(columns, table, sellerID string) *QueryBuilder {
	return NewQueryBuilder(columns, table).
		Where("seller_id = ?", sellerID).
		OrderBy("created_at DESC, id")
}

func (b *QueryBuilder) Where(cond string, args ...interface{}) *QueryBuilder {
	b.where = append(b.where, cond)
	b.params = append(b.params, args...)
	return b
}

func (b *QueryBuilder) OrderBy(order string) *QueryBuilder {
	b.orderBy = order
	return b
}

// Limit caps the rows returned; zero or less means unlimited.
func (b *QueryBuilder) Limit(n int) *QueryBuilder {
	b.limit = n
	return b
}

func (b *QueryBuilder) Build() (string, []interface{}) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s", b.columns, b.table)
	if len(b.where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.where, " AND "))
	}
	if b.orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.orderBy)
	}
	params := append([]interface{}(nil), b.params...)
	if b.limit > 0 {
		sb.WriteString(" LIMIT ?")
		params = append(params, b.limit)
	}
	return renumber(sb.String()), params
}

func renumber(query string) string {
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&sb, "$%d", n)
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
