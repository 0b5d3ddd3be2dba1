package factory

import (
	fab "github.com/Goldziher/fabricator"

	"todoapi/internal/core/util"
)

// DefaultPassword is the plaintext behind every factory-built hash.
const DefaultPassword = "12345678"

func NewUser[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	hasHash := false

	for _, data := range customData {
		if _, exists := data["PasswordHash"]; exists {
			hasHash = true
			break
		}
	}

	if !hasHash {
		hash, _ := util.HashPassword(DefaultPassword)

		customData = append(customData, map[string]any{
			"PasswordHash": hash,
		})
	}

	return instance.Build(customData...)
}
