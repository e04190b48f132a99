// Package utils provides shared utility functions and constants
package utils

// Delimiter separates path segments in object keys.
const Delimiter = "/"

// ServerSignature is printed in the footer of every index page.
const ServerSignature = "Bimpsonshare/1.0.0 (Ubuntu) Server"

// PublicURL builds the direct link for an object key. Existing published
// links depend on this exact form.
func PublicURL(bucket, region, key string) string {
	return "https://" + bucket + ".s3." + region + ".amazonaws.com/" + key
}
