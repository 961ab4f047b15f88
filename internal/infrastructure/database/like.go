package database

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escape ký tự đặc biệt của LIKE, dùng kèm ESCAPE '\'
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ContainsPattern trả về pattern "%s%" đã escape cho ILIKE ... ESCAPE '\'
func ContainsPattern(s string) string {
	return "%" + EscapeLike(s) + "%"
}
