package pages_test

import "github.com/google/uuid"

func mustID(value string) uuid.UUID {
	return uuid.MustParse(value)
}
