package metadata

// SocialImagePath resolves the image eligible for social posting from a
// metadata document. Only the social-sized instagram variant qualifies; big
// originals are never used because the platform APIs reject large uploads.
// The value may be a single path or a list of paths from older documents.
// Returns "" when no eligible image exists.
func SocialImagePath(doc map[string]any) string {
	files, ok := doc["files"].(map[string]any)
	if !ok {
		return ""
	}

	switch v := files["instagram"].(type) {
	case string:
		return v
	case []any:
		if len(v) > 0 {
			if path, ok := v[0].(string); ok {
				return path
			}
		}
	}
	return ""
}
