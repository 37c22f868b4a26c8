package user

import (
	"database/sql"

	"github.com/Ramsey-B/clover/pkg/database"
	"github.com/Ramsey-B/clover/pkg/models"
)

type UserRow struct {
	ID        sql.NullString `db:"id"`
	Email     sql.NullString `db:"email"`
	FirstName sql.NullString `db:"first_name"`
	LastName  sql.NullString `db:"last_name"`
	Phone     sql.NullString `db:"phone"`
	Username  sql.NullString `db:"username"`
	Role      sql.NullString `db:"role"`
}

const (
	userTable = "users"
)

var userStruct = database.NewStruct(new(UserRow))

func ToUser(row *UserRow) models.User {
	return models.User{
		ID:        row.ID.String,
		Email:     nullStringPtr(row.Email),
		FirstName: nullStringPtr(row.FirstName),
		LastName:  nullStringPtr(row.LastName),
		Phone:     nullStringPtr(row.Phone),
		Username:  nullStringPtr(row.Username),
		Role:      nullStringPtr(row.Role),
	}
}

func nullStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
