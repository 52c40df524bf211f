package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	env := ENV{
		DBUser:     "shop",
		DBPassword: "secret",
		DBHost:     "db.internal",
		DBPort:     "3306",
		DBName:     "shopapp",
	}
	assert.Equal(t,
		"shop:secret@tcp(db.internal:3306)/shopapp?charset=utf8mb4&parseTime=True&loc=Local",
		env.DSN())
}
