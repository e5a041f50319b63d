package util

import (
	"fmt"
	"strings"
)

// ValidateUsername checks panel username rules (minimum length, no spaces).
func ValidateUsername(username string, minLen int) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username is empty")
	}
	if len(username) < minLen {
		return fmt.Errorf("username too short, min %d characters", minLen)
	}
	if strings.ContainsAny(username, " \t") {
		return fmt.Errorf("username must not contain spaces")
	}
	return nil
}

// ValidatePassword checks minimum password length.
func ValidatePassword(password string, minLen int) error {
	if password == "" {
		return fmt.Errorf("password is empty")
	}
	if len(password) < minLen {
		return fmt.Errorf("password too short, min %d characters", minLen)
	}
	return nil
}

// ValidatePrice checks the product price (must be non-negative).
func ValidatePrice(price int64) error {
	if price < 0 {
		return fmt.Errorf("price must not be negative, got %d", price)
	}
	return nil
}

// ValidateStock checks the stock count (must be non-negative).
func ValidateStock(stock int) error {
	if stock < 0 {
		return fmt.Errorf("stock must not be negative, got %d", stock)
	}
	return nil
}

// ValidateTitle checks content title length (1-100).
func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("title is empty")
	}
	if len(title) > 100 {
		return fmt.Errorf("title too long, max 100 characters")
	}
	return nil
}
