package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

func isPostgresDialect(dialect string) bool {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return true
	default:
		return false
	}
}

// textColumnExprByDialect JSON 列在 postgres 下需显式转为 text 才能做 LIKE。
func textColumnExprByDialect(dialect, column string) string {
	if isPostgresDialect(dialect) {
		return fmt.Sprintf("CAST(%s AS TEXT)", column)
	}
	return column
}

// buildLikeCondition 构建普通列 + JSON 列的 LIKE 条件，并返回参数数量。
func buildLikeCondition(db *gorm.DB, plainColumns, jsonColumns []string) (string, int) {
	return buildLikeConditionByDialect(dbDialectName(db), plainColumns, jsonColumns)
}

func buildLikeConditionByDialect(dialect string, plainColumns, jsonColumns []string) (string, int) {
	parts := make([]string, 0, len(plainColumns)+len(jsonColumns))
	operator := likeOperatorByDialect(dialect)

	for _, column := range plainColumns {
		trimmed := strings.TrimSpace(column)
		if trimmed == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s ? ESCAPE '\\'", trimmed, operator))
	}
	for _, column := range jsonColumns {
		trimmed := strings.TrimSpace(column)
		if trimmed == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s ? ESCAPE '\\'", textColumnExprByDialect(dialect, trimmed), operator))
	}
	if len(parts) == 0 {
		return "", 0
	}
	return "(" + strings.Join(parts, " OR ") + ")", len(parts)
}

func likeOperatorByDialect(dialect string) string {
	if isPostgresDialect(dialect) {
		return "ILIKE"
	}
	return "LIKE"
}

// repeatLikeArgs 生成重复的 LIKE 参数列表。
func repeatLikeArgs(like string, count int) []interface{} {
	args := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		args = append(args, like)
	}
	return args
}

// escapeLike 转义用户输入中的 LIKE 通配符
func escapeLike(raw string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(raw)
}
