package psqlbuilder

import "github.com/Masterminds/squirrel"

// Обёртка над squirrel с PostgreSQL-плейсхолдерами ($1, $2, ...)
// Все репозитории строят запросы через этот пакет, чтобы не
// повторять PlaceholderFormat в каждом вызове.

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select creates a SELECT builder with dollar placeholders.
func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

// Insert creates an INSERT builder with dollar placeholders.
func Insert(into string) squirrel.InsertBuilder {
	return builder.Insert(into)
}

// Update creates an UPDATE builder with dollar placeholders.
func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}

// Delete creates a DELETE builder with dollar placeholders.
func Delete(from string) squirrel.DeleteBuilder {
	return builder.Delete(from)
}
