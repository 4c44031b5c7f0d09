package utils

import "strings"

// UniqueEmails drops repeated addresses, comparing case-insensitively and keeping the first spelling.
func UniqueEmails(emails []string) []string {
	seen := make(map[string]struct{}, len(emails))
	unique := make([]string, 0, len(emails))

	for _, email := range emails {
		key := strings.ToLower(strings.TrimSpace(email))
		if _, exists := seen[key]; !exists {
			seen[key] = struct{}{}
			unique = append(unique, email)
		}
	}

	return unique
}
