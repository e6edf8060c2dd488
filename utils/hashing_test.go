package utils

import (
	"testing"

	"github.com/spf13/viper"
)

func TestHashAndCheckPassword(t *testing.T) {
	viper.Set("PASSWORD_PEPPER", "pepper")

	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("password stored in the clear")
	}

	if !CheckPasswordHash("s3cret", hash) {
		t.Fatal("correct password rejected")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatal("wrong password accepted")
	}

	// The pepper is part of the hashed input
	viper.Set("PASSWORD_PEPPER", "other")
	if CheckPasswordHash("s3cret", hash) {
		t.Fatal("password accepted with a different pepper")
	}
	viper.Set("PASSWORD_PEPPER", "pepper")
}

func TestGenerateAccessToken(t *testing.T) {
	viper.Set("JWT_SECRET", "test-secret")

	token, err := GenerateAccessToken(1, "admin@intelligensi.ai", 0)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
}
